package role

// Role определяет уровень доступа пользователя
type Role int

const (
	Client   Role = iota // клиент, подающий заявки
	Operator             // оператор, обрабатывающий заявки
	Admin                // администратор
)

func (r Role) String() string {
	switch r {
	case Client:
		return "client"
	case Operator:
		return "operator"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}
