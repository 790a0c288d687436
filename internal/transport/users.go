package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/showcase/internal/domain/project"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	mode := project.PortfolioSort(r.URL.Query().Get("sort"))
	switch mode {
	case "":
		mode = project.PortfolioRecent
	case project.PortfolioRecent, project.PortfolioPopular, project.PortfolioViews, project.PortfolioAlphabetical:
	default:
		writeError(w, http.StatusBadRequest, "invalid_sort", "unknown sort mode "+strconv.Quote(string(mode)), nil)
		return
	}

	profile, err := s.users.Profile(r.Context(), chi.URLParam(r, "userID"), mode)
	if err != nil {
		writeDomainError(w, r, s.logger, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}
