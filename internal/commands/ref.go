package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"hunnydu/internal/service"
)

// Ref addresses a task, and optionally one of its subtasks, in the cached
// collections.
type Ref struct {
	Family  bool // true when the reference targets the family-wide list
	TaskNum int  // 1-based position in the list
	SubNum  int  // 1-based subtask position; 0 addresses the whole task
}

// ErrRefRequired indicates no reference was provided.
var ErrRefRequired = errors.New("task reference required")

// ParseRef parses a task reference.
//
// Grammar: [f]N[.M]. "3" is the third personal task, "f2" the second
// family-wide task, "3.1" the first subtask of personal task 3.
func ParseRef(args []string) (Ref, error) {
	if len(args) == 0 {
		return Ref{}, ErrRefRequired
	}
	s := args[0]
	orig := s

	var ref Ref
	if strings.HasPrefix(s, "f") {
		ref.Family = true
		s = s[1:]
	}

	taskPart := s
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		taskPart = s[:dot]
		subPart := s[dot+1:]
		if !isAllDigits(subPart) {
			return Ref{}, fmt.Errorf("invalid task reference: %s", orig)
		}
		ref.SubNum, _ = strconv.Atoi(subPart)
	}

	if !isAllDigits(taskPart) {
		return Ref{}, fmt.Errorf("invalid task reference: %s", orig)
	}
	ref.TaskNum, _ = strconv.Atoi(taskPart)

	if ref.TaskNum < 1 || (ref.SubNum < 1 && strings.ContainsRune(orig, '.')) {
		return Ref{}, fmt.Errorf("invalid task reference: %s", orig)
	}
	return ref, nil
}

// ResolveTask finds the referenced task in the given snapshots.
func ResolveTask(mine, family []service.Task, ref Ref) (service.Task, error) {
	list := mine
	if ref.Family {
		list = family
	}
	if ref.TaskNum > len(list) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.TaskNum)
	}
	return list[ref.TaskNum-1], nil
}

// ResolveSubtask finds the referenced subtask within a resolved task.
func ResolveSubtask(task service.Task, ref Ref) (service.Subtask, error) {
	if ref.SubNum < 1 {
		return service.Subtask{}, errors.New("subtask reference required (e.g. 2.1)")
	}
	if ref.SubNum > len(task.Subtasks) {
		return service.Subtask{}, fmt.Errorf("subtask number out of range: %d", ref.SubNum)
	}
	return task.Subtasks[ref.SubNum-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
