package scheduler

import (
	"fmt"
	"strings"
)

// Schedule holds, per time unit, the task executing or Idle.
type Schedule []TaskID

func NewSchedule(horizon int64) Schedule {
	result := make(Schedule, horizon)

	for ix := range result {
		result[ix] = Idle
	}

	return result
}

// fill assigns id to [from, from+length), clipped to the horizon.
func (s Schedule) fill(id TaskID, from, length int64) {
	end := min(from+length, int64(len(s)))

	for t := from; t < end; t++ {
		s[t] = id
	}
}

func (s Schedule) IdleCount() int64 {
	var result int64

	for _, id := range s {
		if id == Idle {
			result++
		}
	}

	return result
}

func (s Schedule) Busy() int64 {
	return int64(len(s)) - s.IdleCount()
}

type Segment struct {
	TaskID TaskID
	Start  int64
	End    int64
}

func (seg Segment) Length() int64 {
	return seg.End - seg.Start
}

// Segments returns maximal runs of the same slot value.
// Back-to-back jobs of one task merge into a single segment.
func (s Schedule) Segments() []Segment {
	result := make([]Segment, 0)

	for t := 0; t < len(s); t++ {
		if len(result) > 0 && result[len(result)-1].TaskID == s[t] {
			result[len(result)-1].End = int64(t + 1)

			continue
		}

		result = append(
			result,
			Segment{
				TaskID: s[t],
				Start:  int64(t),
				End:    int64(t + 1),
			},
		)
	}

	return result
}

func (s Schedule) String() string {
	if len(s) == 0 {
		return "Schedule: (empty)"
	}

	var sb strings.Builder
	sb.WriteString("Schedule:\n")

	for _, segment := range s.Segments() {
		sb.WriteString(
			fmt.Sprintf(
				"- [%d-%d) %s\n",

				segment.Start,
				segment.End,
				ternary(
					segment.TaskID == Idle,

					"idle",
					fmt.Sprintf("T%d", segment.TaskID),
				),
			),
		)
	}

	return sb.String()
}
