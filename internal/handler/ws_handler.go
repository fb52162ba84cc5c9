package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/internal/service"
	"github.com/yourusername/nexa-api/internal/websocket"
	"github.com/yourusername/nexa-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения
type WSHandler struct {
	wsHub        *websocket.Hub
	wsManager    *websocket.Manager
	matchService *service.MatchService
	jwtService   *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(
	wsHub *websocket.Hub,
	wsManager *websocket.Manager,
	matchService *service.MatchService,
	jwtService *auth.JWTService,
) *WSHandler {
	handler := &WSHandler{
		wsHub:        wsHub,
		wsManager:    wsManager,
		matchService: matchService,
		jwtService:   jwtService,
	}

	// Регистрируем обработчики сообщений один раз при создании
	handler.registerMessageHandlers()

	return handler
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Пустой Origin - не браузерный клиент (curl, нативное приложение)
		if origin == "" {
			return true
		}

		// Список разрешенных origin (синхронизирован с CORS в main.go)
		allowedOrigins := []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://localhost:4000",
		}

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: rejected unauthorized origin: %s", origin)
		return false
	},
}

// HandleConnection обрабатывает входящее WebSocket соединение
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token parameter"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		log.Printf("WebSocket: Invalid or expired token - %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	log.Printf("WebSocket: Connection upgraded for UserID: %d", claims.UserID)

	client := websocket.NewClient(h.wsHub, conn, claims.UserID, claims.Username)
	client.StartPumps(h.wsManager.HandleMessage)
}

// registerMessageHandlers регистрирует обработчики для типов событий канала
func (h *WSHandler) registerMessageHandlers() {
	// Подписка на группу arena: полезной нагрузки нет, достаточно
	// идентичности соединения
	h.wsManager.RegisterHandler(websocket.JOIN_ARENA, func(data json.RawMessage, client *websocket.Client) error {
		h.wsHub.JoinArena(client)
		return nil
	})

	// Результат матча: валидируем форму, применяем к ranking store,
	// рассылка лидерборда происходит внутри MatchService
	h.wsManager.RegisterHandler(websocket.MATCH_RESULT, func(data json.RawMessage, client *websocket.Client) error {
		var resultEvent struct {
			UserID int64 `json:"userId"`
			Score  int64 `json:"score"`
			XP     int64 `json:"xp"`
		}
		if err := json.Unmarshal(data, &resultEvent); err != nil {
			// Некорректная форма не фатальна для соединения: логируем
			// и отвечаем явной ошибкой вместо молчаливого отбрасывания
			log.Printf("[WSHandler] Ошибка парсинга match:result от клиента %d: %v, Data: %s", client.UserID, err, string(data))
			h.wsManager.SendErrorToClient(client, "invalid_format", "Failed to parse match:result event")
			return nil
		}

		if resultEvent.UserID <= 0 || resultEvent.Score < 0 || resultEvent.XP < 0 {
			log.Printf("[WSHandler] Невалидный match:result от клиента %d: userId=%d score=%d xp=%d",
				client.UserID, resultEvent.UserID, resultEvent.Score, resultEvent.XP)
			h.wsManager.SendErrorToClient(client, "invalid_payload", "userId must be positive, score and xp non-negative")
			return nil
		}

		if _, err := h.matchService.SubmitResult(uint(resultEvent.UserID), int(resultEvent.Score), int(resultEvent.XP)); err != nil {
			log.Printf("[WSHandler] Ошибка обработки match:result для пользователя %d: %v", resultEvent.UserID, err)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				h.wsManager.SendErrorToClient(client, "unknown_user", "User not found")
			case errors.Is(err, apperrors.ErrValidation):
				h.wsManager.SendErrorToClient(client, "invalid_payload", err.Error())
			default:
				h.wsManager.SendErrorToClient(client, "internal_error", "Failed to process match result")
			}
		}
		return nil
	})
}
