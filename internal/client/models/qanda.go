package models

import "strconv"

// QandA is a question the user asked and the backend's answer.
type QandA struct {
	APIID     *int64 `json:"apiId,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"createdAt"`
}

// Key identifies the record in a list: the server id when present,
// otherwise the question text. Two unsaved records with the same question
// share a key.
func (q QandA) Key() string {
	if q.APIID != nil {
		return strconv.FormatInt(*q.APIID, 10)
	}
	return q.Question
}
