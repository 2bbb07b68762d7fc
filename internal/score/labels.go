// Package score holds the deterministic quality/adaptability/reusability
// label lookups. All of them are pure functions of the resource kind, which
// is itself a pure function of the URL; none depend on the license result.
package score

import "github.com/oerlens/oerlens/internal/classify"

// Quality returns the online quality label. Quality has a finer per-platform
// breakdown than adaptability and reusability.
func Quality(kind classify.Kind) string {
	switch kind {
	case classify.KindVideo:
		return "Quality score: High (YouTube verified content)"
	case classify.KindDocument:
		return "Quality score: High (Google Books content)"
	default:
		return "Quality score: Moderate (Standard web content)"
	}
}

// Adaptability returns the online adaptability label.
func Adaptability(classify.Kind) string {
	return "Adaptability score: Medium"
}

// Reusability returns the online reusability label.
func Reusability(classify.Kind) string {
	return "Reusability score: High"
}

// Offline heuristic tables. Each table is independent and falls back to an
// "unable to determine" label for unrecognized kinds.

var offlineQuality = map[classify.Kind]string{
	classify.KindVideo:    "Quality score: Moderate (YouTube content - offline evaluation)",
	classify.KindDocument: "Quality score: Good (Google Books content - offline evaluation)",
}

var offlineAdaptability = map[classify.Kind]string{
	classify.KindVideo:    "Adaptability score: Limited (Video content - offline evaluation)",
	classify.KindDocument: "Adaptability score: Moderate (Book content - offline evaluation)",
}

var offlineReusability = map[classify.Kind]string{
	classify.KindVideo:    "Reusability score: Limited (Platform dependent - offline evaluation)",
	classify.KindDocument: "Reusability score: Moderate (Book content - offline evaluation)",
}

// OfflineQuality returns the offline heuristic quality label.
func OfflineQuality(kind classify.Kind) string {
	if label, ok := offlineQuality[kind]; ok {
		return label
	}
	return "Quality score: Unable to determine (offline)"
}

// OfflineAdaptability returns the offline heuristic adaptability label.
func OfflineAdaptability(kind classify.Kind) string {
	if label, ok := offlineAdaptability[kind]; ok {
		return label
	}
	return "Adaptability score: Unable to determine (offline)"
}

// OfflineReusability returns the offline heuristic reusability label.
func OfflineReusability(kind classify.Kind) string {
	if label, ok := offlineReusability[kind]; ok {
		return label
	}
	return "Reusability score: Unable to determine (offline)"
}
