package websocket

// Типы событий реального времени
const (
	// JOIN_ARENA — запрос клиента на подписку на группу arena
	JOIN_ARENA = "join:arena"

	// MATCH_RESULT — клиент передает результат матча {userId, score, xp}
	MATCH_RESULT = "match:result"

	// LEADERBOARD_UPDATE — сервер рассылает группе arena свежий топ игроков
	LEADERBOARD_UPDATE = "leaderboard:update"

	// SERVER_ERROR — сервер сообщает клиенту об ошибке обработки события
	SERVER_ERROR = "server:error"
)
