package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"merlin/backend/internal/places"
)

// nearbyRadius is the fixed search radius, in meters, for the places lookup.
const nearbyRadius = 3000

// maxFormattedPlaces caps the number of results injected into the prompt,
// to keep the context from growing unbounded.
const maxFormattedPlaces = 3

const noPlacesFound = "Context: No relevant restaurants found in the immediate vicinity based on the query.\n"

// FormatPlaces renders up to the first three results into a block the model
// can ground its recommendation on. Each entry carries name, rating (or
// "N/A"), address and, when the maps credential is configured, an embeddable
// map reference keyed by place id, falling back to coordinates, falling back
// to the URL-encoded name and address. Without a credential the map
// reference is omitted rather than fabricated with a missing key.
func FormatPlaces(results []places.Place, mapsAPIKey string) string {
	if len(results) == 0 {
		return noPlacesFound
	}

	limit := maxFormattedPlaces
	if len(results) < limit {
		limit = len(results)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Context: Nearby Restaurants Found (Top %d relevant results):\n", limit)
	for _, place := range results[:limit] {
		name := place.Name
		if name == "" {
			name = "Unknown Name"
		}
		vicinity := place.Vicinity
		if vicinity == "" {
			vicinity = "Unknown location"
		}
		rating := "N/A"
		if place.Rating > 0 {
			rating = strconv.FormatFloat(place.Rating, 'f', -1, 64)
		}

		fmt.Fprintf(&sb, "- Name: %s, Rating: %s, Address: %s", name, rating, vicinity)

		if mapsAPIKey != "" {
			var embedQuery string
			switch {
			case place.PlaceID != "":
				embedQuery = "place_id:" + place.PlaceID
			case place.Lat != 0 && place.Lng != 0:
				embedQuery = fmt.Sprintf("%v,%v", place.Lat, place.Lng)
			default:
				embedQuery = url.QueryEscape(name + ", " + vicinity)
			}
			iframeURL := fmt.Sprintf("https://www.google.com/maps/embed/v1/place?key=%s&q=%s", mapsAPIKey, embedQuery)
			fmt.Fprintf(&sb, "\n  MapEmbed: <iframe width='100%%' height='300' frameborder='0' style='border:0' src='%s' allowfullscreen></iframe>\n", iframeURL)
		} else {
			sb.WriteString("\n  (Map data incomplete or API key missing)\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
