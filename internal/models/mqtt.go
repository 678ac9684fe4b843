package models

// Имена каналов браслета, совпадают с сегментом топика MQTT
const (
	ChannelACCX = "acc_x"
	ChannelACCY = "acc_y"
	ChannelACCZ = "acc_z"
	ChannelEDA  = "eda"
	ChannelHR   = "hr"
	ChannelTemp = "temp"

	// Псевдоканал для отметок приступа с кнопки устройства
	ChannelSeizureEvent = "seizure_event"
)

// WearableChannels все сенсорные каналы в каноническом порядке
var WearableChannels = []string{
	ChannelACCX, ChannelACCY, ChannelACCZ,
	ChannelEDA, ChannelHR, ChannelTemp,
}

// WearableData одна точка данных от носимого устройства
type WearableData struct {
	DeviceID  string  `json:"device_id"`
	Channel   string  `json:"channel"`
	Value     float64 `json:"value"`
	Units     string  `json:"units"`
	TimeSec   float64 `json:"time_sec"`
	Timestamp int64   `json:"timestamp"`
}

// SeizureMark отметка приступа из топика событий
type SeizureMark struct {
	DeviceID  string  `json:"device_id"`
	StartTime float64 `json:"start_time"` // секунды от начала сессии
	EndTime   float64 `json:"end_time"`   // 0, если конец неизвестен
	Source    string  `json:"source"`     // device_button, clinician, review
	Note      string  `json:"note,omitempty"`
}

// IsSensorChannel проверяет, что имя канала относится к сенсорным рядам
func IsSensorChannel(channel string) bool {
	for _, c := range WearableChannels {
		if c == channel {
			return true
		}
	}
	return false
}
