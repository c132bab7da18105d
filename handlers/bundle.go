package handlers

// HandlerBundle aggregates the handlers the route registrar wires up.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Schedule     *ScheduleHandler
	Holds        *HoldHandler
}
