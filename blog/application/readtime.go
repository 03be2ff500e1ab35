package application

import (
	"fmt"
	"math"
)

const wordsPerMinute = 200

// ReadTime is the reading estimate for a post body.
type ReadTime struct {
	Words   int
	Minutes float64
	Text    string
}

// EstimateReadTime derives a reading estimate from the words of a Markdown body.
// The result only depends on the word count and never decreases as it grows.
func EstimateReadTime(body []byte) ReadTime {
	words := countWords(body)
	minutes := float64(words) / wordsPerMinute

	// Round to hundredths before the ceiling: 201 words still reads as 1 min.
	displayed := int(math.Ceil(math.Round(minutes*100) / 100))

	return ReadTime{
		Words:   words,
		Minutes: minutes,
		Text:    fmt.Sprintf("%d min read", displayed),
	}
}
