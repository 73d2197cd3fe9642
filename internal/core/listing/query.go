package listing

import (
	"net/url"
	"strings"

	"github.com/gofrs/uuid"

	"yatube/internal/core/apperror"
)

// PostQuery narrows a post listing. Zero values mean "no filter".
// Results are always ordered by pub_date, newest first.
type PostQuery struct {
	AuthorID       *uuid.UUID
	AuthorUsername string
	GroupID        *uuid.UUID
	// AuthorIn restricts results to posts by any of these authors when
	// RestrictAuthors is set; an empty set then matches nothing.
	AuthorIn        []uuid.UUID
	RestrictAuthors bool
	// Search is a case-sensitive substring matched against the post text
	// and the author's username.
	Search string
}

// ByAuthors builds the query behind a following feed.
func ByAuthors(ids []uuid.UUID) PostQuery {
	return PostQuery{AuthorIn: ids, RestrictAuthors: true}
}

// PostQueryFromParams reads the filters accepted by the post listing:
// group (id), author (username) and search.
func PostQueryFromParams(params url.Values) (PostQuery, error) {
	var q PostQuery
	if raw := strings.TrimSpace(params.Get("group")); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			return q, apperror.Invalid("group", "Select a valid choice.")
		}
		q.GroupID = &id
	}
	q.AuthorUsername = strings.TrimSpace(params.Get("author"))
	q.Search = strings.TrimSpace(params.Get("search"))
	return q, nil
}

// FollowQuery narrows a follow-edge listing by exact usernames.
type FollowQuery struct {
	UserUsername   string
	AuthorUsername string
	// Search matches edges where either side has exactly this username.
	Search string
}

// FollowQueryFromParams reads the user, author and search filters.
func FollowQueryFromParams(params url.Values) FollowQuery {
	return FollowQuery{
		UserUsername:   strings.TrimSpace(params.Get("user")),
		AuthorUsername: strings.TrimSpace(params.Get("author")),
		Search:         strings.TrimSpace(params.Get("search")),
	}
}
