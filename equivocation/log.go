package equivocation

import "github.com/op/go-logging"

var log = logging.MustGetLogger("equivocation")
