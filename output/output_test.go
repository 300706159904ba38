package output

import (
	"errors"
	"testing"
	"time"
)

func newTestSink(copyErr, pasteErr error) (*Sink, *[]string) {
	var calls []string
	s := New(true)
	s.Settle = time.Millisecond
	s.copyFn = func(text string) error {
		calls = append(calls, "copy:"+text)
		return copyErr
	}
	s.pasteFn = func() error {
		calls = append(calls, "paste")
		return pasteErr
	}
	return s, &calls
}

func TestDeliver(t *testing.T) {
	s, calls := newTestSink(nil, nil)
	if err := s.Deliver("hello "); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	want := []string{"copy:hello ", "paste"}
	if len(*calls) != 2 || (*calls)[0] != want[0] || (*calls)[1] != want[1] {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
}

func TestDeliverClipboardFailureAborts(t *testing.T) {
	boom := errors.New("no clipboard")
	s, calls := newTestSink(boom, nil)
	err := s.Deliver("hello ")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	for _, c := range *calls {
		if c == "paste" {
			t.Error("paste was attempted after clipboard failure")
		}
	}
}

func TestDeliverPasteFailureIsErrPaste(t *testing.T) {
	s, _ := newTestSink(nil, errors.New("uinput missing"))
	err := s.Deliver("hello ")
	if !errors.Is(err, ErrPaste) {
		t.Fatalf("err = %v, want ErrPaste", err)
	}
}

func TestDeliverNoAutoPaste(t *testing.T) {
	s, calls := newTestSink(nil, errors.New("should not run"))
	s.AutoPaste = false
	if err := s.Deliver("hello "); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	for _, c := range *calls {
		if c == "paste" {
			t.Error("paste ran with AutoPaste off")
		}
	}
}
