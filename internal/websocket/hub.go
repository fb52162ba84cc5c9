package websocket

import (
	"encoding/json"
	"log"
	"sync/atomic"
)

// Hub владеет множеством подключенных клиентов и группой рассылки arena.
// Все мутации множеств происходят только в цикле Run: регистрация,
// отписка и вступление в arena приходят через каналы от горутин самих
// соединений, поэтому дополнительная синхронизация карт не нужна.
type Hub struct {
	// Все подключенные клиенты
	clients map[*Client]bool

	// Клиенты, вступившие в группу arena
	arena map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	joinArena  chan *Client

	// Канал широковещательных сообщений для группы arena
	broadcast chan []byte

	done chan struct{}

	clientCount atomic.Int64
	arenaCount  atomic.Int64
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		arena:      make(map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		joinArena:  make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run запускает цикл обработки событий хаба
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case client := <-h.joinArena:
			h.handleJoinArena(client)
		case message := <-h.broadcast:
			h.handleBroadcast(message)
		case <-h.done:
			log.Println("[Hub] Получен сигнал завершения работы, закрываем соединения")
			for client := range h.clients {
				client.CloseSend()
				client.conn.Close()
			}
			return
		}
	}
}

// Close останавливает цикл хаба
func (h *Hub) Close() {
	close(h.done)
}

func (h *Hub) handleRegister(client *Client) {
	h.clients[client] = true
	h.clientCount.Store(int64(len(h.clients)))
	log.Printf("[Hub] Клиент %d (Conn: %s) зарегистрирован, всего: %d", client.UserID, client.ConnectionID, len(h.clients))

	// Сигнал о завершении регистрации
	if client.registrationComplete != nil {
		select {
		case client.registrationComplete <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) handleUnregister(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	delete(h.arena, client)
	h.clientCount.Store(int64(len(h.clients)))
	h.arenaCount.Store(int64(len(h.arena)))
	client.CloseSend()
	log.Printf("[Hub] Клиент %d (Conn: %s) отключен, всего: %d", client.UserID, client.ConnectionID, len(h.clients))
}

func (h *Hub) handleJoinArena(client *Client) {
	if _, ok := h.clients[client]; !ok {
		// Клиент успел отключиться до обработки join
		return
	}
	h.arena[client] = struct{}{}
	h.arenaCount.Store(int64(len(h.arena)))
	log.Printf("[Hub] Клиент %d вступил в arena, подписчиков: %d", client.UserID, len(h.arena))
}

// handleBroadcast рассылает сообщение всем участникам группы arena.
// Доставка best-effort: при переполненном буфере клиента сообщение
// отбрасывается — следующая рассылка содержит полный снимок, а не дельту.
func (h *Hub) handleBroadcast(message []byte) {
	sent := 0
	for client := range h.arena {
		if client.enqueue(message) {
			sent++
		} else {
			log.Printf("[Hub] Буфер клиента %d (Conn: %s) переполнен, сообщение отброшено", client.UserID, client.ConnectionID)
		}
	}
	log.Printf("[Hub] Сообщение разослано %d из %d подписчиков arena", sent, len(h.arena))
}

// Register ставит клиента в очередь на регистрацию
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister ставит клиента в очередь на отключение
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinArena ставит клиента в очередь на вступление в группу arena
func (h *Hub) JoinArena(client *Client) {
	h.joinArena <- client
}

// BroadcastToArena отправляет байтовое сообщение группе arena.
// Возвращает false, если канал рассылки переполнен.
func (h *Hub) BroadcastToArena(message []byte) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		log.Printf("[Hub] Канал рассылки переполнен, сообщение отброшено")
		return false
	}
}

// BroadcastJSONToArena сериализует значение и отправляет его группе arena
func (h *Hub) BroadcastJSONToArena(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.BroadcastToArena(data)
	return nil
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}

// ArenaCount возвращает количество подписчиков группы arena
func (h *Hub) ArenaCount() int {
	return int(h.arenaCount.Load())
}
