package models

import "fmt"

// Analysis is the structured compatibility analysis stored on a match.
// The narrative fields come from a text provider; the Profiles substructure
// is injected by the result merger with the exact computed figures so the
// persisted record always carries deterministic ground truth alongside the
// generated narrative.
type Analysis struct {
	Status               string           `json:"status,omitempty"` // "pending" on placeholder rows only
	OverallCompatibility string           `json:"overall_compatibility,omitempty"`
	Score                int              `json:"score,omitempty"`
	Categories           *Categories      `json:"categories,omitempty"`
	Strengths            []string         `json:"strengths,omitempty"`
	Challenges           []string         `json:"challenges,omitempty"`
	Summary              string           `json:"summary,omitempty"`
	Recommendations      *Recommendations `json:"recommendations,omitempty"`
	YinYangBalance       *BalanceNote     `json:"yin_yang_balance,omitempty"`
	FiveElements         *ElementsNote    `json:"five_elements,omitempty"`
	Profiles             *ProfilePair     `json:"profiles,omitempty"`
}

// Categories holds the four named sub-scores, each 0-100.
type Categories struct {
	Communication     int `json:"communication"`
	DecisionStyle     int `json:"decision_style"`
	Teamwork          int `json:"teamwork"`
	LeadershipHarmony int `json:"leadership_harmony"`
}

// Recommendations is the nested guidance block for the requesting manager.
type Recommendations struct {
	CommunicationStyle    DoDont         `json:"communication_style"`
	EffectiveWorkApproach []string       `json:"effective_work_approach"`
	Motivators            []string       `json:"motivators"`
	Demotivators          []string       `json:"demotivators"`
	InterviewFocus        InterviewFocus `json:"interview_focus"`
}

// DoDont is a paired do/don't list.
type DoDont struct {
	Do   []string `json:"do"`
	Dont []string `json:"dont"`
}

// InterviewFocus suggests interview areas and questions.
type InterviewFocus struct {
	Areas              []string `json:"areas"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// BalanceNote is the narrative yin/yang interaction note.
type BalanceNote struct {
	SubjectA          string `json:"subject_a"`
	SubjectB          string `json:"subject_b"`
	CompatibilityNote string `json:"compatibility_note"`
}

// ElementsNote is the narrative five-element interaction note.
type ElementsNote struct {
	SubjectAPrimary string `json:"subject_a_primary"`
	SubjectBPrimary string `json:"subject_b_primary"`
	Interaction     string `json:"interaction"`
}

// ProfilePair carries both subjects' exact computed figures.
type ProfilePair struct {
	SubjectA ProfileFigures `json:"subject_a"`
	SubjectB ProfileFigures `json:"subject_b"`
}

// ProfileFigures is the deterministic slice of a computed profile that is
// embedded in the persisted analysis for client chart rendering.
type ProfileFigures struct {
	YinYang   YinYangFigures `json:"yin_yang"`
	Elements  ElementShares  `json:"elements"`
	DayMaster DayMasterInfo  `json:"day_master"`
}

// YinYangFigures is the polarity split with its dominance classification.
type YinYangFigures struct {
	Yin       int    `json:"yin"`
	Yang      int    `json:"yang"`
	Dominance string `json:"dominance"`
}

// ElementShares is the normalized five-element percentage distribution.
type ElementShares struct {
	Wood  int `json:"wood"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
	Water int `json:"water"`
}

// DayMasterInfo identifies the day pillar's stem element and polarity.
type DayMasterInfo struct {
	Element string `json:"element"`
	YinYang string `json:"yin_yang"`
}

// PendingAnalysis is the placeholder stored when a match row is created
// ahead of its background synthesis.
func PendingAnalysis() *Analysis {
	return &Analysis{Status: "pending"}
}

// Validate checks that a provider-supplied analysis has the expected shape.
// A shape violation is treated the same as a transport failure: the caller
// falls through to the next provider.
func (a *Analysis) Validate() error {
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("score %d out of range", a.Score)
	}
	if a.Categories != nil {
		for name, v := range map[string]int{
			"communication":      a.Categories.Communication,
			"decision_style":     a.Categories.DecisionStyle,
			"teamwork":           a.Categories.Teamwork,
			"leadership_harmony": a.Categories.LeadershipHarmony,
		} {
			if v < 0 || v > 100 {
				return fmt.Errorf("category %s score %d out of range", name, v)
			}
		}
	}
	if a.OverallCompatibility == "" {
		return fmt.Errorf("missing overall_compatibility")
	}
	if a.Summary == "" {
		return fmt.Errorf("missing summary")
	}
	if len(a.Strengths) == 0 {
		return fmt.Errorf("missing strengths")
	}
	if len(a.Challenges) == 0 {
		return fmt.Errorf("missing challenges")
	}
	return nil
}
