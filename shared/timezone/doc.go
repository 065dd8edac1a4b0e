// Package timezone holds the application clock and the date handling shared
// by every resource.
//
// Audit timestamps (createdAt, modifiedAt) come from Now and are rendered in
// the zone named by APP_TIMEZONE, UTC when unset. Business dates such as a
// booking's checkIn or a user's startDate are calendar days: ParseDate keeps
// them at midnight UTC and FormatDate renders them as YYYY-MM-DD, so a stay
// never moves by a day when the server zone changes.
//
//	checkIn, err := timezone.ParseDate("2024-05-01")
//	day := timezone.FormatDate(checkIn) // "2024-05-01"
package timezone
