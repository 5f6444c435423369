// Package alerts classifies tracked food items by how close they are to
// expiry and turns the results into human-readable notifications.
//
// Items fall into one of three alert levels based on the days remaining
// before their expiry date: critical (one day or less, including already
// expired items), warning (three days or less), and info (seven days or
// less). Anything further out is considered safe and produces no alert.
//
// The System type combines an inventory store with a Notifier so callers
// can both record triggered alerts and deliver them. The default
// LogNotifier writes notifications to the structured log, which keeps the
// package usable without any delivery credentials configured.
package alerts
