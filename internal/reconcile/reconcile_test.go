package reconcile

import (
	"reflect"
	"testing"
	"time"

	"github.com/hamed0406/railalert/internal/domain"
)

func inc(hour int, desc string) domain.Incident {
	return domain.Incident{
		OccurredAt:  time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC),
		Description: desc,
	}
}

func knownSet(incs ...domain.Incident) map[domain.Identity]struct{} {
	out := make(map[domain.Identity]struct{}, len(incs))
	for _, i := range incs {
		out[i.Identity()] = struct{}{}
	}
	return out
}

func TestNew_FiltersKnownPreservesOrder(t *testing.T) {
	a := inc(10, "Delay on Line 1")
	b := inc(11, "Delay on Line 2")
	c := inc(12, "Signal failure at Station A")

	got := New([]domain.Incident{a, b, c}, knownSet(b))
	want := Batch{a, c}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

func TestNew_CollapsesIntraBatchDuplicates(t *testing.T) {
	a := inc(10, "Delay on Line 1")
	b := inc(11, "Delay on Line 2")

	got := New([]domain.Incident{a, b, a}, nil)
	want := Batch{a, b}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

func TestNew_Deterministic(t *testing.T) {
	in := []domain.Incident{inc(10, "A"), inc(10, "B"), inc(11, "A")}
	known := knownSet(inc(10, "B"))

	first := New(in, known)
	second := New(in, known)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different batches: %+v vs %+v", first, second)
	}
}

func TestNew_EmptyCases(t *testing.T) {
	if got := New(nil, nil); len(got) != 0 {
		t.Fatalf("empty input must give empty batch, got %+v", got)
	}

	a := inc(10, "Delay on Line 1")
	if got := New([]domain.Incident{a}, knownSet(a)); len(got) != 0 {
		t.Fatalf("fully-known input must give empty batch, got %+v", got)
	}
}

func TestNew_IgnoresRawFieldDifferencesOnlyByIdentity(t *testing.T) {
	// Two values with identical canonical fields are one incident regardless
	// of how they arrived.
	a1 := inc(10, "Delay on Line 1")
	a2 := domain.Incident{OccurredAt: a1.OccurredAt.In(time.FixedZone("X", 3600)), Description: a1.Description}

	got := New([]domain.Incident{a1, a2}, nil)
	if len(got) != 1 {
		t.Fatalf("want 1 incident, got %d", len(got))
	}
}
