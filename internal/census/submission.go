package census

// Submission is the transient aggregate handed to the transactional writer:
// one parsed coordinate pair plus the validated members in submitted order.
// Built per request, discarded after commit or rollback.
type Submission struct {
	Location Location
	Members  []ValidatedMember
}

// BuildSubmission validates the full composite payload. Members are validated
// in their given order and the first failing record rejects the whole build;
// nothing here touches the store.
func BuildSubmission(rawLocation string, rawMembers []RawMember) (*Submission, error) {
	loc, err := ParseLocation(rawLocation)
	if err != nil {
		return nil, err
	}
	if len(rawMembers) == 0 {
		return nil, ErrEmptyMemberList
	}

	members := make([]ValidatedMember, 0, len(rawMembers))
	for i, raw := range rawMembers {
		validated, err := ValidateMember(raw, i)
		if err != nil {
			return nil, err
		}
		members = append(members, validated)
	}

	return &Submission{Location: loc, Members: members}, nil
}
