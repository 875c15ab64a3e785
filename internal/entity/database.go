package entity

import "time"

// Database is the root document: every mutation rewrites it as one unit.
// Leads and DeletedLeads are kept newest first.
type Database struct {
	Leads        []Lead        `json:"leads"`
	DeletedLeads []DeletedLead `json:"deletedLeads"`
	Stages       Stages        `json:"stages"`
}

// NewSeedDatabase builds the document written the first time a store is used.
func NewSeedDatabase(now time.Time) *Database {
	return &Database{
		Leads: []Lead{
			*NewLead("Alicia Khan", "alicia@example.com", "+1 202-555-0145",
				"Northgate Academy", "Needs a callback this week.", "New", now),
			*NewLead("Rohit Das", "rohit@example.com", "+1 202-555-0176",
				"BluePeak Institute", "Waiting for budget approval.", "Proposal", now),
		},
		DeletedLeads: []DeletedLead{},
		Stages:       DefaultStages(),
	}
}

// Normalize replaces nil slices so the document always encodes as arrays,
// and reports whether the stage set had to be restored to the defaults.
func (db *Database) Normalize() (stagesRepaired bool) {
	if db.Leads == nil {
		db.Leads = []Lead{}
	}
	if db.DeletedLeads == nil {
		db.DeletedLeads = []DeletedLead{}
	}
	if len(db.Stages) == 0 {
		db.Stages = DefaultStages()
		return true
	}
	return false
}

func (db *Database) IndexOf(id string) int {
	for i := range db.Leads {
		if db.Leads[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *Database) IndexOfEmail(email string) int {
	for i := range db.Leads {
		if db.Leads[i].Email == email {
			return i
		}
	}
	return -1
}

// Prepend inserts lead at the head of Leads.
func (db *Database) Prepend(lead Lead) {
	db.Leads = append([]Lead{lead}, db.Leads...)
}

// Remove takes the lead at index i out of Leads and records it, newest first,
// in DeletedLeads.
func (db *Database) Remove(i int, now time.Time) DeletedLead {
	removed := db.Leads[i].Delete(now)
	db.Leads = append(db.Leads[:i:i], db.Leads[i+1:]...)
	db.DeletedLeads = append([]DeletedLead{removed}, db.DeletedLeads...)
	return removed
}
