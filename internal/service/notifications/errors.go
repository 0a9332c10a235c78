package notifications

import "errors"

// ErrSkipped возвращается отправителем, который намеренно ничего не отправил
var ErrSkipped = errors.New("notifications: delivery skipped")
