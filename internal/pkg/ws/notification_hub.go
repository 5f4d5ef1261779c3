package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

var singletonMutex sync.Mutex

// NotificationHub fans verification status events out to websocket listeners
// keyed by session id.
type NotificationHub struct {
	registrationMutex sync.Mutex
	listeners         map[string][]*websocket.Conn
}

func (hub *NotificationHub) RegisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	hub.listeners[topic] = append(hub.listeners[topic], conn)
}

func (hub *NotificationHub) UnregisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	conns := hub.listeners[topic]
	for i, listener := range conns {
		if listener == conn {
			hub.listeners[topic] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(hub.listeners[topic]) == 0 {
		delete(hub.listeners, topic)
	}
}

func (hub *NotificationHub) Publish(targetTopic string, event any) {
	hub.registrationMutex.Lock()
	conns := append([]*websocket.Conn(nil), hub.listeners[targetTopic]...)
	hub.registrationMutex.Unlock()

	for _, listener := range conns {
		_ = listener.WriteJSON(event)
	}
}

var notificationHubSingleton *NotificationHub

func NewNotificationHub() *NotificationHub {
	singletonMutex.Lock()
	defer singletonMutex.Unlock()

	if notificationHubSingleton == nil {
		notificationHubSingleton = &NotificationHub{
			listeners: make(map[string][]*websocket.Conn),
		}
	}

	return notificationHubSingleton
}
