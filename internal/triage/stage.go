package triage

import "strings"

// The two trigger sets are deliberately independent: one decides whether the
// assistant's reply is asking for a location (display stage), the other
// whether to execute the facility search this turn. They predate the
// persisted status column and are kept as a migration safety net for
// sessions written before statuses carried stage transitions.

// locationRequestTriggers mark a reply as a location request.
var locationRequestTriggers = []string{"location", "city", "area", "zip code", "where are you"}

// searchTriggers mark a reply as announcing the facility search.
var searchTriggers = []string{"locating", "finding"}

// locationRequestMaxLen caps the reply length for the location-request check
// so long explanatory replies that merely mention a trigger word do not flip
// the stage.
const locationRequestMaxLen = 300

// IsLocationRequest reports whether the assistant's reply is asking the user
// for their location.
func IsLocationRequest(reply string) bool {
	if len(reply) >= locationRequestMaxLen {
		return false
	}
	return containsAny(reply, locationRequestTriggers)
}

// ShouldSearch reports whether the assistant's reply indicates the facility
// search should run on the user's message this turn.
func ShouldSearch(reply string) bool {
	return containsAny(reply, searchTriggers)
}

func containsAny(s string, triggers []string) bool {
	lower := strings.ToLower(s)
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
