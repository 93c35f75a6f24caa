package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvServerAddress = "POKEBATTLE_ADDR"
	EnvDatabasePath  = "POKEBATTLE_DB"
	EnvGameDataPath  = "POKEBATTLE_GAME_DATA"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteSpecies = "/species"

	RoutePlayers         = "/players"
	RoutePlayerByID      = "/players/:playerUUID"
	RoutePlayerCreatures = "/players/:playerUUID/creatures"

	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleUUID"
	RouteBattleAction  = "/battles/:battleUUID/action"
	RouteBattleCapture = "/battles/:battleUUID/capture"
	RouteBattleForfeit = "/battles/:battleUUID/forfeit"
	RouteBattleStream  = "/battles/:battleUUID/stream"

	RouteVersion = "/version"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest = "Invalid request"

	ErrInvalidBattleID       = "Invalid battle ID"
	ErrBattleNotFound        = "Battle not found"
	ErrBattleNotInProgress   = "Battle is not in progress"
	ErrActionAlreadyDeclared = "Action already declared for this turn"
	ErrNotPartOfThisBattle   = "Player not part of this battle"
	ErrCaptureNotAllowed     = "Capture is only allowed in wild battles"

	ErrPlayerNotFound       = "Player not found"
	ErrCreatureNotFound     = "Creature not found"
	ErrFailedFetchSpecies   = "Failed to fetch species"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrFailedFetchCreatures = "Failed to fetch creatures"
)

// Logging field names
const (
	LogFieldBattleID   = "battle_uuid"
	LogFieldPlayerUUID = "player_uuid"
	LogFieldCreatureID = "creature_id"
	LogFieldSpeciesID  = "species_id"
	LogFieldTurn       = "turn"
	LogFieldSeed       = "seed"
	LogFieldAddr       = "addr"
)
