package commands

import (
	"errors"
	"testing"

	"hunnydu/internal/service"
)

func TestParseRef(t *testing.T) {
	cases := []struct {
		in      string
		want    Ref
		wantErr bool
	}{
		{"1", Ref{TaskNum: 1}, false},
		{"12", Ref{TaskNum: 12}, false},
		{"f1", Ref{Family: true, TaskNum: 1}, false},
		{"3.2", Ref{TaskNum: 3, SubNum: 2}, false},
		{"f2.1", Ref{Family: true, TaskNum: 2, SubNum: 1}, false},
		{"0", Ref{}, true},
		{"abc", Ref{}, true},
		{"f", Ref{}, true},
		{"1.", Ref{}, true},
		{".1", Ref{}, true},
		{"1.x", Ref{}, true},
		{"-1", Ref{}, true},
		{"1.0", Ref{}, true},
	}

	for _, c := range cases {
		got, err := ParseRef([]string{c.in})
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseRef(%q): expected error, got %+v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRef(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseRef(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseRefNoArgs(t *testing.T) {
	_, err := ParseRef(nil)
	if !errors.Is(err, ErrRefRequired) {
		t.Errorf("expected ErrRefRequired, got %v", err)
	}
}

func TestResolveTask(t *testing.T) {
	mine := []service.Task{{ID: 1, Taskname: "Dishes"}}
	family := []service.Task{{ID: 1, Taskname: "Dishes"}, {ID: 2, Taskname: "Vacuum"}}

	task, err := ResolveTask(mine, family, Ref{TaskNum: 1})
	if err != nil || task.Taskname != "Dishes" {
		t.Errorf("expected Dishes, got %+v (%v)", task, err)
	}

	task, err = ResolveTask(mine, family, Ref{Family: true, TaskNum: 2})
	if err != nil || task.Taskname != "Vacuum" {
		t.Errorf("expected Vacuum, got %+v (%v)", task, err)
	}

	if _, err := ResolveTask(mine, family, Ref{TaskNum: 2}); err == nil {
		t.Error("expected out-of-range error for the personal list")
	}
}

func TestResolveSubtask(t *testing.T) {
	task := service.Task{Subtasks: []service.Subtask{{ID: 10, Name: "rinse"}}}

	sub, err := ResolveSubtask(task, Ref{TaskNum: 1, SubNum: 1})
	if err != nil || sub.Name != "rinse" {
		t.Errorf("expected rinse, got %+v (%v)", sub, err)
	}

	if _, err := ResolveSubtask(task, Ref{TaskNum: 1, SubNum: 2}); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := ResolveSubtask(task, Ref{TaskNum: 1}); err == nil {
		t.Error("expected error for a whole-task reference")
	}
}
