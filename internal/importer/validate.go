package importer

import (
	"fmt"

	"github.com/alexanderramin/foreman/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Schedules) == 0 {
		errs = append(errs, fmt.Errorf("schedules: at least one schedule is required"))
	}
	errs = append(errs, validateDefaults(schema.Defaults)...)

	refs := make(map[string]bool)
	for i, s := range schema.Schedules {
		errs = append(errs, validateSchedule(fmt.Sprintf("schedules[%d]", i), s, refs)...)
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	return validateCrew("defaults.crew", d.Crew)
}

// validateSchedule records s.Ref in refs once checked, so After can only
// point backwards. That keeps imported chains acyclic.
func validateSchedule(prefix string, s ScheduleImport, refs map[string]bool) []error {
	var errs []error

	if s.Ref == "" {
		errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
	} else if refs[s.Ref] {
		errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, s.Ref))
	}

	if s.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}

	var start domain.Date
	if s.StartDate == "" {
		errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
	} else if d, err := domain.ParseDate(s.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, s.StartDate))
	} else {
		start = d
	}
	if s.EndDate != nil && *s.EndDate != "" {
		end, err := domain.ParseDate(*s.EndDate)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *s.EndDate))
		case !start.IsZero() && end.Before(start):
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, *s.EndDate, s.StartDate))
		}
	}

	if s.Status != "" && !domain.ValidScheduleStatuses[domain.ScheduleStatus(s.Status)] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, s.Status))
	}

	if s.After != nil && *s.After != "" {
		switch {
		case *s.After == s.Ref:
			errs = append(errs, fmt.Errorf("%s.after: schedule %q cannot follow itself", prefix, s.Ref))
		case !refs[*s.After]:
			errs = append(errs, fmt.Errorf("%s.after: ref %q not found (must appear earlier in schedules list)", prefix, *s.After))
		}
	}
	if s.Lag != nil && *s.Lag < 0 {
		errs = append(errs, fmt.Errorf("%s.lag must not be negative", prefix))
	}
	if s.Duration != nil && *s.Duration < 1 {
		errs = append(errs, fmt.Errorf("%s.duration must be at least 1", prefix))
	}
	errs = append(errs, validateCrew(prefix+".crew", s.Crew)...)

	if s.Ref != "" {
		refs[s.Ref] = true
	}
	return errs
}

func validateCrew(field string, crew []string) []error {
	var errs []error
	for i, id := range crew {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: employee id must not be empty", field, i))
		}
	}
	return errs
}
