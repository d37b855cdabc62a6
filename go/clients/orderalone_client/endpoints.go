package orderalone_client

const (
	// DefaultBaseURL points at a locally running API server
	DefaultBaseURL = "http://localhost:8080"

	// Paths
	userLoginPath   = "/user/login"
	userSignupPath  = "/user/signup"
	userRefreshPath = "/user/refresh"
	userMePath      = "/user/me"

	menuCreatePath  = "/menu/"
	menuSummaryPath = "/menu/summary"
	menuPathFmt     = "/menu/%s"

	gameStartPath  = "/game/start"
	gameEndPath    = "/game/end"
	gameListFmt    = "/game?limit=%d"
	gameTopFmt     = "/game/top?limit=%d"
	gameBestPath   = "/game/best"
	orderPath      = "/order"
	orderScorePath = "/order/score"
	orderByGameFmt = "/order/game/%s?limit=%d"

	userAgent = "orderalone-kiosk"

	// DefaultRecordLimit is the page size the kiosk uses for ranking and history
	DefaultRecordLimit = 5
)
