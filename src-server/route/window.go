package route

import (
	"fmt"
	"net/http"
	"time"

	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/schedule"
	"github.com/samiserrag/denver-songwriters-collective-sub013/src-server/utils"
)

// resolveWindow turns query parameters into a [startKey, endKey] window.
// `from`/`to` take plain date keys; `date` takes a date key or a natural
// phrase ("next friday") and collapses the window to that single day. Blank
// keys are fine, the engine fills its own defaults.
func resolveWindow(as *utils.AppState, r *http.Request) (string, string, error) {
	query := r.URL.Query()

	if date := query.Get("date"); date != "" {
		key, err := resolveDateParam(as, date)
		if err != nil {
			return "", "", err
		}
		return key, key, nil
	}

	startKey := query.Get("from")
	if startKey != "" {
		if _, err := time.Parse(schedule.DateKeyLayout, startKey); err != nil {
			return "", "", fmt.Errorf("resolveWindow: invalid from %q", startKey)
		}
	}
	endKey := query.Get("to")
	if endKey != "" {
		if _, err := time.Parse(schedule.DateKeyLayout, endKey); err != nil {
			return "", "", fmt.Errorf("resolveWindow: invalid to %q", endKey)
		}
	}
	if startKey != "" && endKey != "" && startKey > endKey {
		return "", "", fmt.Errorf("resolveWindow: from is after to")
	}
	return startKey, endKey, nil
}

func resolveDateParam(as *utils.AppState, raw string) (string, error) {
	raw = utils.CleanupString(raw)
	if t, err := time.Parse(schedule.DateKeyLayout, raw); err == nil {
		return t.Format(schedule.DateKeyLayout), nil
	}

	// fall back to natural language, anchored to civil "today"
	base, _ := time.ParseInLocation(schedule.DateKeyLayout, as.Clock.Today(), as.Config.GetLocation())
	result, err := as.When.Parse(raw, base)
	if err != nil || result == nil {
		return "", fmt.Errorf("resolveDateParam: can't parse date %q", raw)
	}
	return result.Time.In(as.Config.GetLocation()).Format(schedule.DateKeyLayout), nil
}
