package policy

type Action int

const (
	ActionRead Action = iota
	ActionUpdate
	ActionDelete
	ActionStatusChange
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionStatusChange:
		return "status_change"
	default:
		return "unknown"
	}
}
