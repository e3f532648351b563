package services

import (
	"context"
	"fmt"
	"strconv"

	"twogether/app/events"
	"twogether/pkg/eventbus"
	"twogether/pkg/fcm"
)

// Subscriber 可以订阅事件的总线
type Subscriber interface {
	Subscribe(topic string, handler eventbus.Handler)
}

// RegisterListeners 注册推送和清理的事件处理
func RegisterListeners(bus Subscriber, notifications *NotificationService, cleanup *CleanupService) {
	bus.Subscribe(events.TopicCoupleConnected, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(events.CoupleConnected)
		if !ok {
			return unexpectedEvent(e)
		}
		notifications.Notify(ctx, []uint64{evt.HostUserID}, fcm.Notification{
			Title: "Connected!",
			Body:  "Your partner accepted your invitation.",
		}, map[string]string{
			"type":     "COUPLE_CONNECTED",
			"coupleId": strconv.FormatUint(evt.CoupleID, 10),
		})
		return nil
	})

	bus.Subscribe(events.TopicMemoCreated, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(events.MemoCreated)
		if !ok {
			return unexpectedEvent(e)
		}
		notifications.Notify(ctx, []uint64{evt.PartnerID}, fcm.Notification{
			Title: "New memo",
			Body:  evt.Title,
		}, map[string]string{
			"type":      "MEMO_CREATED",
			"contentId": strconv.FormatUint(evt.ContentID, 10),
		})
		return nil
	})

	bus.Subscribe(events.TopicScheduleCreated, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(events.ScheduleCreated)
		if !ok {
			return unexpectedEvent(e)
		}
		notifications.Notify(ctx, []uint64{evt.PartnerID}, fcm.Notification{
			Title: "New schedule",
			Body:  evt.Title,
		}, map[string]string{
			"type":       "SCHEDULE_CREATED",
			"scheduleId": strconv.FormatUint(evt.ScheduleID, 10),
		})
		return nil
	})

	bus.Subscribe(events.TopicMemberLeft, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(events.MemberLeft)
		if !ok {
			return unexpectedEvent(e)
		}
		_, err := cleanup.Cleanup(ctx, evt.UserID)
		return err
	})

	bus.Subscribe(events.TopicUserWithdrawn, func(ctx context.Context, e eventbus.Event) error {
		evt, ok := e.(events.UserWithdrawn)
		if !ok {
			return unexpectedEvent(e)
		}
		_, err := cleanup.Cleanup(ctx, evt.UserID)
		return err
	})
}

func unexpectedEvent(e eventbus.Event) error {
	return fmt.Errorf("unexpected event %T on topic %s", e, e.Topic())
}
