package client

import (
	"strconv"
	"strings"
	"sync"

	"github.com/raushan165/Taskpilot/pkg/assistant"
)

// TaskBoard is the client-owned task list. Every mutation notifies listeners
// with a copy of the new list.
type TaskBoard struct {
	mu        sync.Mutex
	tasks     []assistant.Task
	seq       int
	listeners []func([]assistant.Task)
}

func NewTaskBoard() *TaskBoard {
	return &TaskBoard{}
}

func (b *TaskBoard) Add(title string, deadline *assistant.Date, priority assistant.Priority) assistant.Task {
	b.mu.Lock()
	b.seq++
	t := assistant.Task{
		ID:       strconv.Itoa(b.seq),
		Title:    strings.TrimSpace(title),
		Deadline: deadline,
		Priority: priority,
	}
	b.tasks = append(b.tasks, t)
	b.mu.Unlock()
	b.notify()
	return t
}

// Toggle flips completion of the task with id.
func (b *TaskBoard) Toggle(id string) bool {
	return b.mutate(id, func(t *assistant.Task) { t.Completed = !t.Completed })
}

// Pin flips the pinned flag of the task with id.
func (b *TaskBoard) Pin(id string) bool {
	return b.mutate(id, func(t *assistant.Task) { t.Pinned = !t.Pinned })
}

func (b *TaskBoard) Remove(id string) bool {
	b.mu.Lock()
	idx := b.index(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.tasks = append(b.tasks[:idx], b.tasks[idx+1:]...)
	b.mu.Unlock()
	b.notify()
	return true
}

func (b *TaskBoard) Tasks() []assistant.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]assistant.Task(nil), b.tasks...)
}

func (b *TaskBoard) Subscribe(fn func([]assistant.Task)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *TaskBoard) mutate(id string, fn func(*assistant.Task)) bool {
	b.mu.Lock()
	idx := b.index(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	fn(&b.tasks[idx])
	b.mu.Unlock()
	b.notify()
	return true
}

func (b *TaskBoard) index(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *TaskBoard) notify() {
	b.mu.Lock()
	tasks := append([]assistant.Task(nil), b.tasks...)
	listeners := append([]func([]assistant.Task){}, b.listeners...)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn(tasks)
	}
}

// BindPanel re-evaluates p whenever b changes, starting with the current list.
func BindPanel(b *TaskBoard, p *assistant.Panel) {
	b.Subscribe(func(tasks []assistant.Task) { p.Update(tasks) })
	p.Update(b.Tasks())
}
