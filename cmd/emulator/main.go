package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// WearableData структура для отправки данных браслета
type WearableData struct {
	DeviceID  string  `json:"device_id"`
	Channel   string  `json:"channel"`
	Value     float64 `json:"value"`
	Units     string  `json:"units"`
	TimeSec   float64 `json:"time_sec"`
	Timestamp int64   `json:"timestamp"`
}

// SeizureMark отметка приступа с кнопки устройства
type SeizureMark struct {
	DeviceID  string  `json:"device_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Source    string  `json:"source"`
	Note      string  `json:"note,omitempty"`
}

// CSVRecord для чтения и записи данных из файла
type CSVRecord struct {
	TimeSec float64
	Value   float64
}

// EventRecord отметка приступа из events.csv
type EventRecord struct {
	StartTime float64
	EndTime   float64
	Note      string
}

// Сенсорные каналы браслета и их единицы измерения
var sensorChannels = []string{"acc_x", "acc_y", "acc_z", "eda", "hr", "temp"}

var channelUnits = map[string]string{
	"acc_x": "g",
	"acc_y": "g",
	"acc_z": "g",
	"eda":   "uS",
	"hr":    "bpm",
	"temp":  "C",
}

var mqttClient mqtt.Client

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	fmt.Println("✓ Подключение к MQTT брокеру установлено")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	fmt.Printf("Соединение с MQTT брокером потеряно: %v\n", err)
}

func initMQTTClient() error {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("epi-band-%d", time.Now().Unix()))
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("ошибка подключения к MQTT: %v", token.Error())
	}
	return nil
}

func publishMQTT(topic string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %v", err)
	}
	token := mqttClient.Publish(topic, 1, false, jsonData)
	if !token.WaitTimeout(2 * time.Second) {
		return fmt.Errorf("таймаут отправки MQTT")
	}
	return token.Error()
}

// --- Функции для работы с файлами ---

func readCSVFile(filename string) ([]CSVRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %v", filename, err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения CSV файла %s: %v", filename, err)
	}
	var csvRecords []CSVRecord
	for i, record := range records {
		// Пропускаем заголовок и некорректные строки
		if i == 0 || len(record) < 2 {
			continue
		}
		timeSec, errT := strconv.ParseFloat(record[0], 64)
		value, errV := strconv.ParseFloat(record[1], 64)
		if errT != nil || errV != nil {
			continue
		}
		csvRecords = append(csvRecords, CSVRecord{TimeSec: timeSec, Value: value})
	}
	return csvRecords, nil
}

func writeCSVFile(filename string, records []CSVRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("не удалось создать файл %s: %v", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"time_sec", "value"}); err != nil {
		return fmt.Errorf("не удалось записать заголовок в %s: %v", filename, err)
	}

	for _, record := range records {
		row := []string{
			strconv.FormatFloat(record.TimeSec, 'f', -1, 64),
			strconv.FormatFloat(record.Value, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("не удалось записать строку в %s: %v", filename, err)
		}
	}
	return nil
}

// readEventsFile читает отметки приступов сессии, файл может отсутствовать
func readEventsFile(filename string) ([]EventRecord, error) {
	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %v", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения CSV файла %s: %v", filename, err)
	}

	var events []EventRecord
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue
		}
		start, errS := strconv.ParseFloat(record[0], 64)
		end, errE := strconv.ParseFloat(record[1], 64)
		if errS != nil || errE != nil {
			continue
		}
		ev := EventRecord{StartTime: start, EndTime: end}
		if len(record) > 2 {
			ev.Note = record[2]
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(a, b int) bool { return events[a].StartTime < events[b].StartTime })
	return events, nil
}

// findSessionDirs ищет директории сессий, в которых есть все шесть каналов
func findSessionDirs(dataDir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать директорию %s: %v", dataDir, err)
	}

	var sessionDirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(dataDir, e.Name())
		complete := true
		for _, ch := range sensorChannels {
			if _, err := os.Stat(filepath.Join(dir, ch+".csv")); err != nil {
				complete = false
				break
			}
		}
		if complete {
			sessionDirs = append(sessionDirs, dir)
		}
	}
	sort.Strings(sessionDirs)
	return sessionDirs, nil
}

// --- Нормализация сессии: выравниваем шесть каналов по общей оси времени ---

func normalizeSession(dir string) (map[string]string, error) {
	valueMaps := make(map[string]map[float64]float64)
	allTimestampsMap := make(map[float64]bool)

	for _, ch := range sensorChannels {
		records, err := readCSVFile(filepath.Join(dir, ch+".csv"))
		if err != nil {
			return nil, err
		}
		vm := make(map[float64]float64)
		for _, r := range records {
			vm[r.TimeSec] = r.Value
			allTimestampsMap[r.TimeSec] = true
		}
		valueMaps[ch] = vm
	}

	var sortedTimestamps []float64
	for t := range allTimestampsMap {
		sortedTimestamps = append(sortedTimestamps, t)
	}
	sort.Float64s(sortedTimestamps)

	if len(sortedTimestamps) == 0 {
		return nil, fmt.Errorf("в сессии %s нет ни одной точки данных", dir)
	}

	// Пропуски на общей оси заполняем значением -1, при отправке они не уходят в брокер
	fixedPaths := make(map[string]string)
	for _, ch := range sensorChannels {
		var fixed []CSVRecord
		for _, ts := range sortedTimestamps {
			if val, ok := valueMaps[ch][ts]; ok {
				fixed = append(fixed, CSVRecord{TimeSec: ts, Value: val})
			} else {
				fixed = append(fixed, CSVRecord{TimeSec: ts, Value: -1})
			}
		}
		path := filepath.Join(dir, ch+"_fixed.csv")
		if err := writeCSVFile(path, fixed); err != nil {
			return nil, err
		}
		fixedPaths[ch] = path
	}

	fmt.Printf("✓ Сессия %s нормализована: %d точек на общей оси времени\n",
		filepath.Base(dir), len(sortedTimestamps))
	return fixedPaths, nil
}

// --- Основная логика эмуляции ---

func emulateSession(files map[string]string, events []EventRecord, deviceID string, speedMultiplier float64, wg *sync.WaitGroup) {
	defer wg.Done()

	sessionData := make(map[string][]CSVRecord)
	readErrs := make(map[string]error)
	var mu sync.Mutex
	var readWg sync.WaitGroup

	for _, ch := range sensorChannels {
		readWg.Add(1)
		go func(channel, path string) {
			defer readWg.Done()
			records, err := readCSVFile(path)
			mu.Lock()
			sessionData[channel] = records
			readErrs[channel] = err
			mu.Unlock()
		}(ch, files[ch])
	}
	readWg.Wait()

	numRecords := -1
	for _, ch := range sensorChannels {
		if readErrs[ch] != nil {
			log.Printf("Ошибка чтения канала %s. Пропуск сессии.", ch)
			return
		}
		if numRecords == -1 || len(sessionData[ch]) < numRecords {
			numRecords = len(sessionData[ch])
		}
	}
	if numRecords <= 0 {
		log.Printf("Сессия пропущена: один из каналов пуст.")
		return
	}

	fmt.Printf("✅ Сессия начата. Точек на канал: %d, отметок приступов: %d\n", numRecords, len(events))

	nextEvent := 0
	timeAxis := sessionData[sensorChannels[0]]

	for i := 0; i < numRecords; i++ {
		var wgPublish sync.WaitGroup
		for _, ch := range sensorChannels {
			wgPublish.Add(1)
			go func(channel string, record CSVRecord) {
				defer wgPublish.Done()
				if record.Value == -1 {
					return
				} // Не отправляем "пустые" значения
				data := WearableData{
					DeviceID: deviceID, Timestamp: time.Now().UnixNano(), Channel: channel,
					Value: record.Value, Units: channelUnits[channel], TimeSec: record.TimeSec,
				}
				topic := fmt.Sprintf("medical/wearable/%s/%s", channel, deviceID)
				if err := publishMQTT(topic, data); err != nil {
					log.Printf("Ошибка отправки %s: %v", channel, err)
				}
			}(ch, sessionData[ch][i])
		}
		wgPublish.Wait()

		// Отметки приступов уходят, когда время воспроизведения доходит до их начала
		currentTime := timeAxis[i].TimeSec
		for nextEvent < len(events) && events[nextEvent].StartTime <= currentTime {
			mark := SeizureMark{
				DeviceID:  deviceID,
				StartTime: events[nextEvent].StartTime,
				EndTime:   events[nextEvent].EndTime,
				Source:    "device_button",
				Note:      events[nextEvent].Note,
			}
			topic := fmt.Sprintf("medical/wearable/seizure_event/%s", deviceID)
			if err := publishMQTT(topic, mark); err != nil {
				log.Printf("Ошибка отправки отметки приступа: %v", err)
			} else {
				fmt.Printf("⚡ Отметка приступа отправлена: t=%.1fс\n", mark.StartTime)
			}
			nextEvent++
		}

		if i < numRecords-1 {
			sleepSeconds := (timeAxis[i+1].TimeSec - timeAxis[i].TimeSec) / speedMultiplier
			if sleepSeconds > 0 {
				time.Sleep(time.Duration(sleepSeconds * float64(time.Second)))
			}
		}
	}
}

// Главная функция
func main() {
	log.SetFlags(log.LstdFlags)
	fmt.Println("=== ЭМУЛЯТОР БРАСЛЕТА EPI BAND v1.0 (6 каналов + отметки приступов) ===")

	if err := initMQTTClient(); err != nil {
		log.Fatalf("Не удалось инициализировать MQTT клиент: %v", err)
	}
	defer mqttClient.Disconnect(250)

	deviceID := fmt.Sprintf("EPI-BAND-%04d", 1+time.Now().Unix()%9998)

	dataDir := os.Getenv("EMULATOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	speedMultiplier := 1.0
	if s := os.Getenv("EMULATOR_SPEED"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			speedMultiplier = v
		}
	}

	// 1. Находим директории сессий со всеми шестью каналами
	sessionDirs, err := findSessionDirs(dataDir)
	if err != nil || len(sessionDirs) == 0 {
		log.Fatalf("Не найдены сессии для воспроизведения в директории %s. Завершение работы.", dataDir)
	}
	fmt.Printf("📂 Найдено %d сессий для воспроизведения.\n\n", len(sessionDirs))

	// 2. Нормализуем каждую сессию и собираем пути к выровненным файлам
	type preparedSession struct {
		name   string
		files  map[string]string
		events []EventRecord
	}
	var prepared []preparedSession
	for _, dir := range sessionDirs {
		files, err := normalizeSession(dir)
		if err != nil {
			log.Printf("Ошибка нормализации сессии %s: %v. Пропуск.", dir, err)
			continue
		}
		events, err := readEventsFile(filepath.Join(dir, "events.csv"))
		if err != nil {
			log.Printf("Ошибка чтения отметок сессии %s: %v. Продолжаем без отметок.", dir, err)
			events = nil
		}
		prepared = append(prepared, preparedSession{
			name:   strings.TrimSuffix(filepath.Base(dir), "/"),
			files:  files,
			events: events,
		})
	}

	if len(prepared) == 0 {
		log.Fatalf("Не удалось нормализовать ни одной сессии. Завершение работы.")
	}

	fmt.Printf("\n🔄 Нормализация завершена. Готово к эмуляции %d сессий (скорость x%.1f).\n",
		len(prepared), speedMultiplier)

	// 3. Запускаем бесконечный цикл эмуляции
	for {
		for _, session := range prepared {
			fmt.Printf("\n==================== НАЧАЛО СЕССИИ %s ====================\n", session.name)

			var wg sync.WaitGroup
			wg.Add(1)
			go emulateSession(session.files, session.events, deviceID, speedMultiplier, &wg)
			wg.Wait()

			fmt.Printf("==================== СЕССИЯ %s ЗАВЕРШЕНА ====================\n", session.name)
			fmt.Println("⏸️  Пауза 5 секунд перед следующей сессией...")
			time.Sleep(5 * time.Second)
		}
		fmt.Println("\n🏁 Все сессии завершены. Начинаем цикл заново через 10 секунд.")
		time.Sleep(10 * time.Second)
	}
}
