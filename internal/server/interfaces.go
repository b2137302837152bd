package server

// Server is the transport lifecycle owned by this package. RunServer blocks
// until a stop signal arrives; Shutdown drains in-flight requests and
// releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
