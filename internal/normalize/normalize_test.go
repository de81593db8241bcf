package normalize

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendape/agenda-api/internal/model"
	"github.com/agendape/agenda-api/pkg/logger"
)

func testNormalizer() *Normalizer {
	fixed := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.Local)
	return New(logger.NewNop()).WithClock(func() time.Time { return fixed })
}

func TestNormalize_RoundTrip(t *testing.T) {
	n := testNormalizer()
	ev := n.Normalize(model.RawEventRecord{
		SEI:        "3900032430.000048/2025-09",
		Submission: "2025-02-03 00:00:00",
		Subject:    "Solicita JPS",
		Type:       "JPS",
		Requester:  "PMPE (20º BPM)",
		Location:   "Sede do 20º BPM",
		FocalPoint: "Major Ferraz F. 3181-3583",
		EventDate:  "2025-02-12 00:00:00",
		Situation:  "ATENDIDO",
	})

	require.NotEmpty(t, ev.ID)
	assert.Equal(t, model.DateResolved, ev.DateStatus)

	sub, ok := ev.SubmittedAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.Local), sub, 0)

	start, ok := ev.StartAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.February, 12, 8, 0, 0, 0, time.Local), start, 0)

	end, ok := ev.EndAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.February, 12, 17, 0, 0, 0, time.Local), end, 0)
}

func TestNormalize_SlashSubmissionDate(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		Submission: "25/03/2025",
		Subject:    "Solicita JPS",
		EventDate:  "05 e 06/04/2025",
	})
	sub, ok := ev.SubmittedAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.March, 25, 0, 0, 0, 0, time.Local), sub, 0)

	start, _ := ev.StartAt()
	end, _ := ev.EndAt()
	assert.Equal(t, 5, start.Day())
	assert.Equal(t, 6, end.Day())
	assert.Equal(t, time.April, start.Month())
}

func TestNormalize_MissingSubmissionDate(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		Submission: "-",
		Subject:    "Solicita JPS",
		EventDate:  "2025-02-14 00:00:00",
	})
	assert.Equal(t, model.InvalidDate, ev.SubmissionDate)
	_, ok := ev.SubmittedAt()
	assert.False(t, ok)
	// Event date still resolves on its own.
	assert.Equal(t, model.DateResolved, ev.DateStatus)
}

func TestNormalize_IndeterminateDate(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		Submission: "2025-01-22 00:00:00",
		Subject:    "Solicita JPS",
		EventDate:  "A definir",
	})
	assert.Equal(t, model.DateUndetermined, ev.DateStatus)
	assert.Equal(t, model.InvalidTime, ev.StartTime)
	assert.Equal(t, model.InvalidTime, ev.EndTime)
}

func TestNormalize_MonthOnlyApproximation(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		Submission: "2024-12-10 00:00:00",
		Subject:    "Solicita JPS",
		EventDate:  "Janeiro/2025 A definir",
	})
	assert.Equal(t, model.DateApproximate, ev.DateStatus)
	start, ok := ev.StartAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.January, 15, 8, 0, 0, 0, time.Local), start, 0)
}

func TestNormalize_PlaceholderFallback(t *testing.T) {
	n := testNormalizer()
	ev := n.Normalize(model.RawEventRecord{
		Submission: "2025-01-22 00:00:00",
		Subject:    "Solicita JPS",
		EventDate:  "data com problema",
	})
	assert.Equal(t, model.DatePlaceholder, ev.DateStatus)
	start, ok := ev.StartAt()
	require.True(t, ok)
	// One month out from the fixed clock, default business hours.
	assert.WithinDuration(t, time.Date(2025, time.May, 1, 8, 0, 0, 0, time.Local), start, 0)
	end, ok := ev.EndAt()
	require.True(t, ok)
	assert.WithinDuration(t, time.Date(2025, time.May, 1, 17, 0, 0, 0, time.Local), end, 0)
}

func TestNormalize_SentinelInvariant(t *testing.T) {
	phrases := []string{"A definir", "2025-02-12 00:00:00", "garbage", "17, 18 e 19/03/2025", "Março/25 A definir"}
	for i, phrase := range phrases {
		t.Run(fmt.Sprintf("phrase_%d", i), func(t *testing.T) {
			ev := testNormalizer().Normalize(model.RawEventRecord{
				Submission: "2025-01-22 00:00:00",
				Subject:    "Solicita JPS",
				EventDate:  phrase,
			})
			assert.Equal(t,
				ev.StartTime == model.InvalidTime,
				ev.EndTime == model.InvalidTime,
				"start sentinel iff end sentinel")
		})
	}
}

func TestNormalize_IdentifierCleanup(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		SEI:        "3900000034.000928/2025-53\n3900000034.000950/2025-01",
		Submission: "2025-01-22 00:00:00",
		Subject:    "Solicita JPS",
		EventDate:  "19 a 22/02/2025",
		DailySEI:   "Não atendido",
	})
	assert.Equal(t, "3900000034.000928/2025-53, 3900000034.000950/2025-01", ev.SEINumber)
	assert.Empty(t, ev.DailySEINumber)
}

func TestNormalize_LocationPreservesNewlines(t *testing.T) {
	ev := testNormalizer().Normalize(model.RawEventRecord{
		Submission: "2025-03-14 00:00:00",
		Subject:    "Solicita JPS",
		EventDate:  "2025-05-07 00:00:00",
		Location:   "Fórum Juiz Clodoaldo<br>Rua Cabo Joaquim Da Mata",
	})
	assert.True(t, strings.Contains(ev.Location, "\n"))
	assert.False(t, strings.Contains(ev.Location, "<br>"))
}

func TestNormalize_SituationMerge(t *testing.T) {
	tests := map[string]string{
		"realizada":         "REALIZADO",
		"Realizado":         "REALIZADO",
		"solicitado":        "SOLICITADO",
		"algo desconhecido": "ALGO DESCONHECIDO",
	}
	for in, want := range tests {
		ev := testNormalizer().Normalize(model.RawEventRecord{
			Submission: "2025-01-22 00:00:00",
			Subject:    "Solicita JPS",
			EventDate:  "2025-02-12 00:00:00",
			Situation:  in,
		})
		assert.Equal(t, want, ev.Situation)
	}
}

func TestNormalize_TypeInference(t *testing.T) {
	tests := []struct {
		subject  string
		explicit string
		want     string
	}{
		{"Solicita JPS e JPE", "", "JPS E JPE"},
		{"Solicita JPS", "", "JPS"},
		{"Solicita JPE", "", "JPE"},
		{"Reunião com a diretoria", "", "REUNIÃO"},
		{"Ação de governo estadual", "", "AÇÃO DE GOVERNO"},
		{"Outra coisa", "", "OUTRO"},
		{"Solicita JPS", "CAPACITAÇÃO", "CAPACITAÇÃO"},
	}
	for _, tt := range tests {
		ev := testNormalizer().Normalize(model.RawEventRecord{
			Submission: "2025-01-22 00:00:00",
			Subject:    tt.subject,
			Type:       tt.explicit,
			EventDate:  "2025-02-12 00:00:00",
		})
		assert.Equal(t, tt.want, ev.Type, "subject %q", tt.subject)
	}
}
