package taskwake

import (
	"testing"
)

func BenchmarkNotifier_Notify(b *testing.B) {
	tasks := NewTasks()
	tasks.Run(func() {
		h := NewTaskHandle(tasks)
		defer h.Close()
		h.Prerun()
		n := h.Notifier()

		b.ReportAllocs()
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				n.Notify()
			}
		})
	})
}

func BenchmarkNotifier_NotifyClosed(b *testing.B) {
	h := NewTaskHandle(NewTasks())
	n := h.Notifier()
	h.Close()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n.Notify()
		}
	})
}

func BenchmarkMailbox_PostTake(b *testing.B) {
	var m mailbox
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.post(1)
		m.take()
	}
}
