package reservation

// Stage は1回の予約試行の進行段階
type Stage string

const (
	StageStarted          Stage = "started"
	StageCapacityReserved Stage = "capacity_reserved"
	StageSeatClaimed      Stage = "seat_claimed"
	StageTicketWritten    Stage = "ticket_written"
	StageCommitted        Stage = "committed"
	StageAborted          Stage = "aborted"
)
