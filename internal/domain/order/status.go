package order

// Status 订单状态
//
//	pending ──→ shipped ──→ delivered ──→ completed
//	   │           │
//	   └───────────┴──→ cancelled
//
// completed和cancelled是终态，相同状态的更新也被拒绝
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted},
}

// PurchasedStatuses 计入"已购买"的状态（评价资格、销售报表）
var PurchasedStatuses = []Status{StatusShipped, StatusDelivered, StatusCompleted}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal 是否终态
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CountsAsPurchase 是否计入已购买
func (s Status) CountsAsPurchase() bool {
	return s == StatusShipped || s == StatusDelivered || s == StatusCompleted
}

// CanTransitionTo 是否允许变更到next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckTransition 校验状态变更
func (s Status) CheckTransition(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !s.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}

// StatusStrings 状态列表转字符串（SQL IN参数）
func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
