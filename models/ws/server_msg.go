package wsmodels

type ServerMessage struct {
	ToUserID       uint   `json:"-"`
	NotificationID uint   `json:"notification_id"` // ид уведомления
	Time           string `json:"time"`            // время события
	Code           string `json:"code"`            // код события
	Title          string `json:"title"`           // заголовок
	Msg            string `json:"msg"`             // текст события
}
