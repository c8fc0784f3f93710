package crm

import (
	"database/sql"
	"log"
	"net/http"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/crm/booking"
	"TravelCrmSaas/api/crm/customer"
	"TravelCrmSaas/api/crm/document"
	"TravelCrmSaas/api/crm/email"
	"TravelCrmSaas/api/crm/guide"
	"TravelCrmSaas/api/crm/hotel"
	"TravelCrmSaas/api/crm/note"
	"TravelCrmSaas/api/crm/reminder"
	"TravelCrmSaas/api/crm/ticket"
	"TravelCrmSaas/api/crm/tourfile"
	"TravelCrmSaas/api/crm/user"

	"github.com/gorilla/mux"
)

func StartCRMService(db *sql.DB) {
	router := mux.NewRouter()
	router.Use(api.SessionMiddleware(api.PolicyAllowAll))

	router.HandleFunc("/crm/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from CRM Service"))
	})

	/*users*/
	router.HandleFunc("/crm/users/register", user.Register(db)).Methods("POST")
	router.HandleFunc("/crm/users", user.GetUsers(db)).Methods("GET")
	router.HandleFunc("/crm/users/me", user.GetCurrentUser(db)).Methods("GET")
	router.HandleFunc("/crm/users/{id}", user.GetUserById(db)).Methods("GET")

	/*customers*/
	router.HandleFunc("/crm/customers", customer.GetAllCustomers(db)).Methods("GET")
	router.HandleFunc("/crm/customers", customer.CreateCustomer(db)).Methods("POST")
	router.HandleFunc("/crm/customers/{id}", customer.GetCustomerById(db)).Methods("GET")
	router.HandleFunc("/crm/customers/{id}", customer.UpdateCustomer(db)).Methods("PUT")
	router.HandleFunc("/crm/customers/{id}", customer.DeleteCustomer(db)).Methods("DELETE")

	/*bookings*/
	router.HandleFunc("/crm/bookings", booking.GetAllBookings(db)).Methods("GET")
	router.HandleFunc("/crm/bookings", booking.CreateBooking(db)).Methods("POST")
	router.HandleFunc("/crm/bookings/{id}", booking.GetBookingById(db)).Methods("GET")
	router.HandleFunc("/crm/bookings/{id}", booking.UpdateBooking(db)).Methods("PUT")
	router.HandleFunc("/crm/bookings/{id}", booking.DeleteBooking(db)).Methods("DELETE")

	/*tickets*/
	router.HandleFunc("/crm/tickets", ticket.GetAllTickets(db)).Methods("GET")
	router.HandleFunc("/crm/tickets", ticket.CreateTicket(db)).Methods("POST")
	router.HandleFunc("/crm/tickets/parse-from-email", ticket.ParseTicketFromEmail(db)).Methods("POST")
	router.HandleFunc("/crm/tickets/{id}", ticket.GetTicketById(db)).Methods("GET")
	router.HandleFunc("/crm/tickets/{id}", ticket.UpdateTicket(db)).Methods("PUT")
	router.HandleFunc("/crm/tickets/{id}", ticket.DeleteTicket(db)).Methods("DELETE")

	/*documents*/
	router.HandleFunc("/crm/documents", document.GetAllDocuments(db)).Methods("GET")
	router.HandleFunc("/crm/documents", document.UploadDocument(db)).Methods("POST")
	router.HandleFunc("/crm/documents/stats/categories", document.GetDocumentsByCategory(db)).Methods("GET")
	router.HandleFunc("/crm/documents/{id}", document.GetDocumentById(db)).Methods("GET")
	router.HandleFunc("/crm/documents/{id}/status", document.UpdateDocumentStatus(db)).Methods("PUT")
	router.HandleFunc("/crm/documents/{id}", document.DeleteDocument(db)).Methods("DELETE")

	/*hotels*/
	router.HandleFunc("/crm/hotels", hotel.GetAllHotels(db)).Methods("GET")
	router.HandleFunc("/crm/hotels", hotel.CreateHotel(db)).Methods("POST")
	router.HandleFunc("/crm/hotels/{id}", hotel.GetHotelById(db)).Methods("GET")
	router.HandleFunc("/crm/hotels/{id}", hotel.UpdateHotel(db)).Methods("PUT")
	router.HandleFunc("/crm/hotels/{id}", hotel.DeleteHotel(db)).Methods("DELETE")

	/*guides*/
	router.HandleFunc("/crm/guides", guide.GetAllGuides(db)).Methods("GET")
	router.HandleFunc("/crm/guides", guide.CreateGuide(db)).Methods("POST")
	router.HandleFunc("/crm/guides/{id}", guide.GetGuideById(db)).Methods("GET")
	router.HandleFunc("/crm/guides/{id}", guide.UpdateGuide(db)).Methods("PUT")
	router.HandleFunc("/crm/guides/{id}", guide.DeleteGuide(db)).Methods("DELETE")

	/*emails*/
	router.HandleFunc("/crm/emails", email.GetAllEmails(db)).Methods("GET")
	router.HandleFunc("/crm/emails/low-confidence", email.GetLowConfidenceEmails(db)).Methods("GET")
	router.HandleFunc("/crm/emails/{id}", email.GetEmailById(db)).Methods("GET")
	router.HandleFunc("/crm/emails/{id}/read", email.MarkEmailAsRead(db)).Methods("PUT")
	router.HandleFunc("/crm/emails/{id}/parsed", email.MarkEmailAsParsed(db)).Methods("PUT")

	/*notes*/
	router.HandleFunc("/crm/notes", note.GetAllNotes(db)).Methods("GET")
	router.HandleFunc("/crm/notes", note.CreateNote(db)).Methods("POST")
	router.HandleFunc("/crm/notes/{id}", note.UpdateNote(db)).Methods("PUT")
	router.HandleFunc("/crm/notes/{id}", note.DeleteNote(db)).Methods("DELETE")

	/*reminders*/
	router.HandleFunc("/crm/reminders", reminder.GetAllReminders(db)).Methods("GET")
	router.HandleFunc("/crm/reminders", reminder.CreateReminder(db)).Methods("POST")
	router.HandleFunc("/crm/reminders/complete-multiple", reminder.CompleteMultipleReminders(db)).Methods("POST")
	router.HandleFunc("/crm/reminders/{id}", reminder.UpdateReminder(db)).Methods("PUT")
	router.HandleFunc("/crm/reminders/{id}", reminder.DeleteReminder(db)).Methods("DELETE")

	/*tour files*/
	router.HandleFunc("/crm/tour-files", tourfile.GetAllTourFiles(db)).Methods("GET")
	router.HandleFunc("/crm/tour-files", tourfile.CreateTourFile(db)).Methods("POST")
	router.HandleFunc("/crm/tour-files/{id}", tourfile.GetTourFileById(db)).Methods("GET")
	router.HandleFunc("/crm/tour-files/{id}", tourfile.UpdateTourFile(db)).Methods("PUT")
	router.HandleFunc("/crm/tour-files/{id}", tourfile.DeleteTourFile(db)).Methods("DELETE")

	log.Println("CRM Service started on :3243")
	err := http.ListenAndServe(":3243", router)
	if err != nil {
		log.Fatalf("CRM Service failed: %v", err)
	}
}
