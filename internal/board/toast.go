package board

import "time"

const (
	MsgLoadFailed   = "连接服务器失败"
	MsgPostOK       = "发布成功！"
	MsgPostFailed   = "发布失败，请重试"
	DefaultToastTTL = 3 * time.Second
)

// Toast é a notificação transitória do rodapé.
type Toast struct {
	Show    bool   `json:"show"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Notifier recebe cada mudança de toast (mostrar e esconder).
type Notifier interface {
	Toast(t Toast)
}

type NotifierFunc func(Toast)

func (f NotifierFunc) Toast(t Toast) { f(t) }

// Timer é o pedaço de *time.Timer que usamos; facilita relógio falso nos testes.
type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
