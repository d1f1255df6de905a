package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"octofit.app/tracker/internal/modules/leaderboard/dto"
	leaderboard "octofit.app/tracker/internal/modules/leaderboard/service"
	"octofit.app/tracker/pkg/response"
	"octofit.app/tracker/pkg/validator"
)

type LeaderboardHandler struct {
	service     leaderboard.LeaderboardService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService, redisClient *redis.Client) *LeaderboardHandler {
	return &LeaderboardHandler{
		service:     service,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var filter dto.LeaderboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	entries, err := h.service.GetLeaderboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *LeaderboardHandler) RefreshRankings(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.RefreshRankings(c.Request.Context(), req.Period); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rankings updated"})
}

// HandleWebSocket relays leaderboard refresh events from Redis to the client.
func (h *LeaderboardHandler) HandleWebSocket(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates unavailable"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	pubsub := h.redisClient.Subscribe(c.Request.Context(), leaderboard.RefreshChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("failed to subscribe to %s: %v", leaderboard.RefreshChannel, err)
		return
	}

	ch := pubsub.Channel()
	for msg := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
