package mqttclient

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"EPI_monitor/configs"
)

// InitClient инициализирует MQTT клиент с аутентификацией
func InitClient(mqttCfg configs.MQTTConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(mqttCfg.Broker)
	opts.SetClientID(mqttCfg.ClientID)

	if mqttCfg.Username != "" && mqttCfg.Password != "" {
		opts.SetUsername(mqttCfg.Username)
		opts.SetPassword(mqttCfg.Password)
		log.Printf("MQTT аутентификация: пользователь %s", mqttCfg.Username)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.OnConnect = func(c mqtt.Client) {
		fmt.Println("MQTT подключен")
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Printf("MQTT соединение потеряно: %v", err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT подключение не удалось: %w", token.Error())
	}

	return client, nil
}
