package events

const (
	StreamName   = "MATCHD_EVENTS"
	StreamMaxAge = "720h" // 30 days

	SubjectCatalogReloaded = "banqueando.catalog.reloaded"
)

func SubjectMatchCompleted(sessionID string) string { return "banqueando.match." + sessionID + ".completed" }
func SubjectMatchFallback(sessionID string) string  { return "banqueando.match." + sessionID + ".fallback" }
