// Package notify surfaces the terminal outcome of a user flow.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"geonotes/internal/model"
	"geonotes/pkg/geo"
	pkgLog "geonotes/pkg/log"
	"geonotes/pkg/metrics"
	"geonotes/pkg/telegram"
)

// Kind is the outcome of a flow.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
	KindInfo    Kind = "info"
)

// Notification is one user-visible message.
type Notification struct {
	Kind    Kind        `json:"kind"`
	Message string      `json:"message"`
	Note    *model.Note `json:"note,omitempty"`
	Error   string      `json:"error,omitempty"`
	At      time.Time   `json:"at"`
}

// Notifier shows transient messages. Info is for outcomes that are neither a
// success nor a failure, such as a cancelled edit.
//
//go:generate mockery --name Notifier
type Notifier interface {
	Success(ctx context.Context, message string, n *model.Note)
	Failure(ctx context.Context, message string, err error)
	Info(ctx context.Context, message string)
}

// --- Log ---

type logNotifier struct {
	l pkgLog.Logger
}

// NewLog writes notifications to the service log.
func NewLog(l pkgLog.Logger) Notifier {
	return &logNotifier{l: l}
}

func (n *logNotifier) Success(ctx context.Context, message string, note *model.Note) {
	if note != nil {
		n.l.Infof(ctx, "notify: %s (key=%s)", message, note.Key)
		return
	}
	n.l.Infof(ctx, "notify: %s", message)
}

func (n *logNotifier) Failure(ctx context.Context, message string, err error) {
	if err == nil {
		n.l.Warnf(ctx, "notify: %s", message)
		return
	}
	n.l.Warnf(ctx, "notify: %s: %v", message, err)
}

func (n *logNotifier) Info(ctx context.Context, message string) {
	n.l.Infof(ctx, "notify: %s", message)
}

// --- Writer ---

type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter prints one line per notification, for terminals.
func NewWriter(w io.Writer) Notifier {
	return &writerNotifier{w: w}
}

func (n *writerNotifier) Success(_ context.Context, message string, note *model.Note) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if note != nil && note.Key != "" {
		fmt.Fprintf(n.w, "✔ %s [%s]\n", message, note.Key)
		return
	}
	fmt.Fprintf(n.w, "✔ %s\n", message)
}

func (n *writerNotifier) Failure(_ context.Context, message string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		fmt.Fprintf(n.w, "✘ %s: %v\n", message, err)
		return
	}
	fmt.Fprintf(n.w, "✘ %s\n", message)
}

func (n *writerNotifier) Info(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "• %s\n", message)
}

// --- Telegram ---

type telegramNotifier struct {
	bot    *telegram.Bot
	chatID int64
	l      pkgLog.Logger
}

// NewTelegram forwards notifications to a Telegram chat. Saved notes that
// carry a position are followed by a location pin. Delivery errors are logged.
func NewTelegram(bot *telegram.Bot, chatID int64, l pkgLog.Logger) Notifier {
	return &telegramNotifier{bot: bot, chatID: chatID, l: l}
}

func (n *telegramNotifier) Success(ctx context.Context, message string, note *model.Note) {
	text := "✅ " + message
	if note != nil && note.Title != "" {
		text += ": " + note.Title
	}
	if err := n.bot.SendMessage(ctx, n.chatID, text); err != nil {
		n.l.Errorf(ctx, "notify/telegram: send message: %v", err)
		return
	}

	if note == nil {
		return
	}
	if p, ok := geo.Parse(note.Position); ok {
		if err := n.bot.SendLocation(ctx, n.chatID, p.Lat, p.Lng); err != nil {
			n.l.Errorf(ctx, "notify/telegram: send location: %v", err)
		}
	}
}

func (n *telegramNotifier) Failure(ctx context.Context, message string, err error) {
	if sendErr := n.bot.SendMessage(ctx, n.chatID, "❌ "+message); sendErr != nil {
		n.l.Errorf(ctx, "notify/telegram: send message: %v", sendErr)
	}
}

func (n *telegramNotifier) Info(ctx context.Context, message string) {
	if err := n.bot.SendMessage(ctx, n.chatID, "ℹ️ "+message); err != nil {
		n.l.Errorf(ctx, "notify/telegram: send message: %v", err)
	}
}

// --- Fan-out ---

type multi []Notifier

// Multi delivers every notification to each of ns in order.
func Multi(ns ...Notifier) Notifier {
	return multi(ns)
}

func (m multi) Success(ctx context.Context, message string, note *model.Note) {
	for _, n := range m {
		n.Success(ctx, message, note)
	}
}

func (m multi) Failure(ctx context.Context, message string, err error) {
	for _, n := range m {
		n.Failure(ctx, message, err)
	}
}

func (m multi) Info(ctx context.Context, message string) {
	for _, n := range m {
		n.Info(ctx, message)
	}
}

// --- Metrics ---

type counting struct {
	m *metrics.Collector
}

// NewCounting counts notifications by kind.
func NewCounting(m *metrics.Collector) Notifier {
	return counting{m: m}
}

func (c counting) Success(context.Context, string, *model.Note) {
	c.m.Notifications.WithLabelValues(string(KindSuccess)).Inc()
}

func (c counting) Failure(context.Context, string, error) {
	c.m.Notifications.WithLabelValues(string(KindFailure)).Inc()
}

func (c counting) Info(context.Context, string) {
	c.m.Notifications.WithLabelValues(string(KindInfo)).Inc()
}

// --- Recorder ---

// Recorder keeps the most recent notifications in memory so adapters can
// show them and tests can count them.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
	now   func() time.Time
}

// NewRecorder keeps at most limit notifications; 0 keeps all.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, now: time.Now}
}

func (r *Recorder) Success(ctx context.Context, message string, note *model.Note) {
	item := Notification{Kind: KindSuccess, Message: message}
	if note != nil {
		cp := *note
		item.Note = &cp
	}
	r.add(item)
}

func (r *Recorder) Failure(ctx context.Context, message string, err error) {
	item := Notification{Kind: KindFailure, Message: message}
	if err != nil {
		item.Error = err.Error()
	}
	r.add(item)
}

func (r *Recorder) Info(ctx context.Context, message string) {
	r.add(Notification{Kind: KindInfo, Message: message})
}

func (r *Recorder) add(item Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.At = r.now()
	r.items = append(r.items, item)
	if r.limit > 0 && len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// All returns a copy of the recorded notifications, oldest first.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Len returns the number of recorded notifications.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
