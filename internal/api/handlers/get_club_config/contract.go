package get_club_config

type Logger interface {
	Info(format string, v ...interface{})
}
