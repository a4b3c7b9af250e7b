package candidate

import (
	"fmt"
	"math"
	"strings"
)

const (
	IkigaiPassion  = "passion"
	IkigaiMission  = "mission"
	IkigaiVocation = "vocation"
	IkigaiMastery  = "mastery"

	IkigaiMaxValue = 10
)

// IkigaiKeys lists the axes in display order
var IkigaiKeys = []string{IkigaiPassion, IkigaiMission, IkigaiVocation, IkigaiMastery}

type IkigaiScores struct {
	Passion  int `json:"passion"`
	Mission  int `json:"mission"`
	Vocation int `json:"vocation"`
	Mastery  int `json:"mastery"`
}

type IkigaiAnswer struct {
	Question string  `json:"question,omitempty"`
	Key      string  `json:"key"`
	Value    float64 `json:"value"`
}

type IkigaiQuestion struct {
	Key      string `json:"key"`
	Question string `json:"question"`
}

// DefaultIkigaiQuestions is served to clients building the assessment form
var DefaultIkigaiQuestions = []IkigaiQuestion{
	{Key: IkigaiPassion, Question: "How much do you enjoy the work you would like to do next?"},
	{Key: IkigaiPassion, Question: "How often do you lose track of time doing it?"},
	{Key: IkigaiMission, Question: "How important is it that your work improves other people's lives?"},
	{Key: IkigaiMission, Question: "How strongly do you care about the mission of the company you join?"},
	{Key: IkigaiVocation, Question: "How confident are you that people would pay for these skills?"},
	{Key: IkigaiVocation, Question: "How much demand do you see for this role in your market?"},
	{Key: IkigaiMastery, Question: "How good are you at it compared to your peers?"},
	{Key: IkigaiMastery, Question: "How much have you invested in getting better at it?"},
}

// AggregateIkigai averages answers per known axis and rounds half away from
// zero. Unknown keys are ignored; an axis without answers stays 0.
func AggregateIkigai(answers []IkigaiAnswer) IkigaiScores {
	sums := make(map[string]float64, len(IkigaiKeys))
	counts := make(map[string]int, len(IkigaiKeys))

	for _, a := range answers {
		key := strings.ToLower(strings.TrimSpace(a.Key))
		if !isIkigaiKey(key) {
			continue
		}
		v := a.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		sums[key] += v
		counts[key]++
	}

	avg := func(key string) int {
		if counts[key] == 0 {
			return 0
		}
		return int(math.Round(sums[key] / float64(counts[key])))
	}

	return IkigaiScores{
		Passion:  avg(IkigaiPassion),
		Mission:  avg(IkigaiMission),
		Vocation: avg(IkigaiVocation),
		Mastery:  avg(IkigaiMastery),
	}
}

func isIkigaiKey(key string) bool {
	for _, k := range IkigaiKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Text renders the scores as embedding input, e.g. "Ikigai: Passion 7, Mission 8, ..."
func (s IkigaiScores) Text() string {
	return fmt.Sprintf("Ikigai: Passion %d, Mission %d, Vocation %d, Mastery %d",
		s.Passion, s.Mission, s.Vocation, s.Mastery)
}
