// Package resources assembles the admin tables served by the API and the admin CLI.
package resources

import (
	"github.com/trezcool/tutoria/core/absence"
	"github.com/trezcool/tutoria/core/announcement"
	"github.com/trezcool/tutoria/core/attendance"
	"github.com/trezcool/tutoria/core/listing"
	"github.com/trezcool/tutoria/core/program"
	"github.com/trezcool/tutoria/core/session"
	"github.com/trezcool/tutoria/core/student"
)

func All() []listing.Resource {
	return []listing.Resource{
		program.Resource(),
		student.Resource(),
		session.Resource(),
		attendance.Resource(),
		absence.Resource(),
		announcement.Resource(),
	}
}

func NewRegistry() *listing.Registry {
	return listing.NewRegistry(All()...)
}
