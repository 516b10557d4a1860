package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer собирает длительности фаз проверки одного файла.
// Не потокобезопасен: у драйвера по таймеру на файл.
type Timer struct {
	phases []PhaseReport
}

func NewTimer() *Timer { return &Timer{phases: make([]PhaseReport, 0, 4)} }

// Begin starts a phase; calling the returned stop records its duration and
// note. Only the first call to stop counts.
func (t *Timer) Begin(name string) (stop func(note string)) {
	idx := len(t.phases)
	t.phases = append(t.phases, PhaseReport{Name: name})
	started := time.Now()
	stopped := false
	return func(note string) {
		if stopped {
			return
		}
		stopped = true
		t.phases[idx].DurationMS = millis(time.Since(started))
		t.phases[idx].Note = note
	}
}

// PhaseReport is one phase as serialized into timing output.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds the phases of one or more files and their total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: append([]PhaseReport(nil), t.phases...)}
	for _, p := range r.Phases {
		r.TotalMS += p.DurationMS
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	line := func(name string, ms float64, note string) {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			b.WriteString("  // " + note)
		}
		b.WriteByte('\n')
	}
	for _, p := range r.Phases {
		line(p.Name, p.DurationMS, p.Note)
	}
	line("total", r.TotalMS, "")
	return b.String()
}

// Aggregate складывает одноимённые фазы всех отчётов в порядке первого
// появления. Заметки заменяются числом файлов.
func Aggregate(reports []Report) Report {
	var (
		out   Report
		pos   = make(map[string]int)
		files int
	)
	for _, r := range reports {
		if len(r.Phases) == 0 {
			continue
		}
		files++
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, ok := pos[p.Name]
			if !ok {
				i = len(out.Phases)
				pos[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
		}
	}
	for i := range out.Phases {
		out.Phases[i].Note = fmt.Sprintf("%d files", files)
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
