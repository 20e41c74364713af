package cluster

import (
	"context"
	"fmt"
	"sort"
	"time"

	eventsv1 "k8s.io/api/events/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/futuretea/kubernetics-mcp-server/pkg/output"
)

const unknownTime = "unknown time"

// ListEvents lists the events of a namespace, oldest first, as
// "[<time>] <reason>: <note>". With raw set, the whole list response is
// returned as one JSON line instead.
func (q *Querier) ListEvents(ctx context.Context, namespace string, raw bool) ([]string, error) {
	message := fmt.Sprintf("Error fetching events for namespace %s", namespace)

	typed, err := q.typed()
	if err != nil {
		return nil, q.fail(OpListEvents, message, err)
	}
	if namespace == "" {
		return nil, q.fail(OpListEvents, message, ErrEmptyNamespace)
	}

	events, err := typed.EventsV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, q.fail(OpListEvents, message, err)
	}

	if raw {
		events.TypeMeta = metav1.TypeMeta{Kind: "EventList", APIVersion: "events.k8s.io/v1"}
		dump, err := output.NewFormatter().FormatCompactJSON(events)
		if err != nil {
			return nil, q.fail(OpListEvents, message, err)
		}
		return []string{dump}, nil
	}

	items := events.Items
	sortEventsByTime(items)

	lines := make([]string, 0, len(items))
	for i := range items {
		lines = append(lines, FormatEvent(&items[i]))
	}
	return lines, nil
}

// FormatEvent renders one event line.
func FormatEvent(event *eventsv1.Event) string {
	when := unknownTime
	if ts := eventTime(event); !ts.IsZero() {
		when = ts.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("[%s] %s: %s", when, event.Reason, event.Note)
}

// eventTime prefers eventTime, then the deprecated lastTimestamp, then the
// last observation of an event series. Zero when none is set.
func eventTime(event *eventsv1.Event) time.Time {
	switch {
	case !event.EventTime.IsZero():
		return event.EventTime.Time
	case !event.DeprecatedLastTimestamp.IsZero():
		return event.DeprecatedLastTimestamp.Time
	case event.Series != nil && !event.Series.LastObservedTime.IsZero():
		return event.Series.LastObservedTime.Time
	}
	return time.Time{}
}

// sortEventsByTime sorts events oldest first; events without a time come first.
func sortEventsByTime(events []eventsv1.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return eventTime(&events[i]).Before(eventTime(&events[j]))
	})
}
