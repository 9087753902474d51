package models

import "sort"

// Candidate is a user considered by the similarity ranking, with their full
// hobby list loaded.
type Candidate struct {
	ID       string
	Username string
	Hobbies  []Hobby
}

type RankedUser struct {
	Username      string   `json:"username"`
	CommonHobbies int      `json:"common_hobbies"`
	Hobbies       []string `json:"hobbies"`
}

// CommonHobbyCount is the size of the intersection between the given hobby
// set (keyed by hobby ID) and the candidate's hobbies.
func CommonHobbyCount(mine map[string]bool, hobbies []Hobby) int {
	count := 0
	for _, h := range hobbies {
		if mine[h.ID] {
			count++
		}
	}
	return count
}

// RankBySharedHobbies orders candidates by descending common-hobby count with
// the requester. Ties break by candidate ID ascending so the order is
// deterministic across requests.
func RankBySharedHobbies(candidates []Candidate, mine map[string]bool) []RankedUser {
	type scored struct {
		Candidate
		common int
	}

	all := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		all = append(all, scored{Candidate: cand, common: CommonHobbyCount(mine, cand.Hobbies)})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].common != all[j].common {
			return all[i].common > all[j].common
		}
		return all[i].ID < all[j].ID
	})

	ranked := make([]RankedUser, 0, len(all))
	for _, s := range all {
		names := make([]string, 0, len(s.Hobbies))
		for _, h := range s.Hobbies {
			names = append(names, h.Name)
		}
		ranked = append(ranked, RankedUser{
			Username:      s.Username,
			CommonHobbies: s.common,
			Hobbies:       names,
		})
	}
	return ranked
}
