package matching

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score is a match percentage in hundredths: 6667 means 66.67%.
type Score int

const MaxScore Score = 10000

func (s Score) Percent() float64 {
	return float64(s) / 100
}

func (s Score) String() string {
	return fmt.Sprintf("%d.%02d", int(s)/100, int(s)%100)
}

func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Score) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*s = ScoreFromPercent(f)
	return nil
}

// ScoreFromPercent converts a stored two-decimal percentage back into a Score.
func ScoreFromPercent(p float64) Score {
	return clampScore(Score(math.Round(p * 100)))
}

// Calculate scores how much of the job's skill set the candidate covers.
// A candidate token hits when it contains, or is contained in, any job token;
// each candidate token counts at most once. The denominator is the job set size.
func Calculate(candidate, required SkillSet) Score {
	if candidate.Empty() || required.Empty() {
		return 0
	}

	hits := 0
	for c := range candidate {
		for r := range required {
			if strings.Contains(r, c) || strings.Contains(c, r) {
				hits++
				break
			}
		}
	}

	return clampScore(roundHalfUp(hits*int(MaxScore), required.Len()))
}

// roundHalfUp divides num by den rounding halves up, for non-negative operands.
func roundHalfUp(num, den int) Score {
	if den <= 0 {
		return 0
	}
	return Score((2*num + den) / (2 * den))
}

func clampScore(s Score) Score {
	if s < 0 {
		return 0
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
