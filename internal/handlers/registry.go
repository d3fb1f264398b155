package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	BookingHandler  *BookingHandler
	MatchingHandler *MatchingHandler
	MentorHandler   *MentorHandler
	ProfileHandler  *ProfileHandler
}
