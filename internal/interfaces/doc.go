// Package interfaces documents the abstractions that connect the postomat
// packages and pins their implementations with compile-time checks.
//
// # Interface Categories
//
// ## Locker Access
//
//   - http.StatusReader, http.LockerClient: status and open calls used by the
//     gateway (internal/http/stores.go)
//   - scheduler.StatusSource: status snapshots for the watcher
//     (internal/scheduler/status_watch.go)
//
// Implemented by *locker.Client.
//
// ## Notifications
//
//   - http.MessageSender, scheduler.Notifier: email delivery
//
// Implemented by *notify.Mailer.
//
// ## Background Work
//
//   - http.Watcher: watcher state and manual trigger for /api/watch
//
// Implemented by *scheduler.StatusWatcher.
//
// # Adding a New Notification Channel
//
//  1. Implement Send in a new package:
//
//     type TelegramNotifier struct {
//         token  string
//         chatID string
//     }
//
//     func (n *TelegramNotifier) Send(ctx context.Context, msg notify.Message) error
//
//  2. Pass it to scheduler.WithNotifier in internal/entrypoint/components.go
//
//  3. Add a compile-time check to checks.go:
//
//     var _ scheduler.Notifier = (*telegram.Notifier)(nil)
//
// # Custom Converter Rules
//
// Types that need non-default (un)structuring register hooks when the
// converter is built:
//
//	conv := converter.New(
//	    converter.WithStructureHook(reflect.TypeOf(Door(false)), structureDoor),
//	)
//	client := locker.NewClient(baseURL, locker.WithConverter(conv))
//
// # Compile-Time Interface Checks
//
// Every implementation has a check of the form
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
