package llm

import "fmt"

// returns the deterministic tour generation instruction for a destination.
// The model must validate that the city exists in the country and has a real
// population before producing the fixed-shape record, and must answer with
// the {"tour": null} sentinel otherwise.
func buildTourPrompt(city, country string) string {
	return fmt.Sprintf(`Find the exact city %[1]s in the exact country %[2]s.
If %[1]s and %[2]s exist, create a list of things families can do in %[1]s, %[2]s.
Once you have a list, create a one-day tour. Response should be in the following JSON format:
{
  "tour": {
    "city": "%[1]s",
    "country": "%[2]s",
    "title": "title of the tour",
    "description": "short description of the city and tour",
    "stops": ["stop name", "stop name", "stop name"]
  }
}
The "stops" property should include only three stops.
If you can't find info on the exact %[1]s, or %[1]s does not exist, or its population is less than 1, or it is not located in %[2]s, return { "tour": null }, with no additional characters.`, city, country)
}
