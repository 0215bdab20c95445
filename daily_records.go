package main

import "sort"

// dailyRecordStore keeps at most one DailyRecord per date, sorted most recent
// first.
type dailyRecordStore struct {
	records []DailyRecord
}

func newDailyRecordStore(records []DailyRecord) *dailyRecordStore {
	s := &dailyRecordStore{}
	for _, r := range records {
		s.upsert(r)
	}
	return s
}

// upsert replaces any record with the same date and re-sorts descending.
func (s *dailyRecordStore) upsert(r DailyRecord) {
	kept := s.records[:0]
	for _, existing := range s.records {
		if existing.Date != r.Date {
			kept = append(kept, existing)
		}
	}
	s.records = append(kept, r)
	// Date keys are zero-padded YYYY-MM-DD, so string order is chronological.
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Date > s.records[j].Date
	})
}

// delete removes the record for date. Confirmation happens at the boundary;
// here it is unconditional. Reports whether a record was removed.
func (s *dailyRecordStore) delete(date string) bool {
	for i, r := range s.records {
		if r.Date == date {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *dailyRecordStore) get(date string) (DailyRecord, bool) {
	for _, r := range s.records {
		if r.Date == date {
			return r, true
		}
	}
	return DailyRecord{}, false
}

// all returns a copy of every record, most recent first. Never nil.
func (s *dailyRecordStore) all() []DailyRecord {
	return append([]DailyRecord{}, s.records...)
}

// chronological returns the last n records in ascending date order.
// n <= 0 or n larger than the store returns every record.
func (s *dailyRecordStore) chronological(n int) []DailyRecord {
	if n <= 0 || n > len(s.records) {
		n = len(s.records)
	}
	out := make([]DailyRecord, n)
	// records[0..n) are the n most recent, newest first; reverse them.
	for i := 0; i < n; i++ {
		out[i] = s.records[n-1-i]
	}
	return out
}

func (s *dailyRecordStore) len() int {
	return len(s.records)
}
