// Package sentiment scores text with the VADER lexicon. It needs no model
// files and is used when SENTIMENT_BACKEND=vader.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

type Score struct {
	Label string
	Score float64
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the markup so the
// lexicon only sees words.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plainText), " ")
}

// AnalyzeWithVADER returns both labels, best first. The compound score in
// [-1,1] is mapped onto a probability so that the pair sums to one.
func AnalyzeWithVADER(text string) []Score {
	plainText := ConvertMarkdownToText(text)
	compound := analyzer.PolarityScores(plainText).Compound

	positive := Score{Label: LabelPositive, Score: clamp((1 + compound) / 2)}
	negative := Score{Label: LabelNegative, Score: clamp((1 - compound) / 2)}

	if compound >= 0 {
		return []Score{positive, negative}
	}
	return []Score{negative, positive}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
