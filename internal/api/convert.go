package api

import "github.com/mkarahan/storeaudit/internal/services"

func convertAPIStore(st *Store) *services.Store {
	if st == nil {
		return nil
	}
	return &services.Store{
		ID:        st.ID,
		Name:      st.Name,
		Address:   st.Address,
		IsActive:  st.IsActive,
		CreatedAt: st.CreatedAt,
	}
}

func convertServiceStore(st *services.Store) *Store {
	if st == nil {
		return nil
	}
	return &Store{
		ID:        st.ID,
		Name:      st.Name,
		Address:   st.Address,
		IsActive:  st.IsActive,
		CreatedAt: st.CreatedAt,
	}
}

func convertAPITemplate(t *FormTemplate) *services.FormTemplate {
	if t == nil {
		return nil
	}
	out := &services.FormTemplate{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
	for _, c := range t.Categories {
		cat := services.Category{CategoryID: c.CategoryID, Name: c.Name, Order: c.Order}
		for _, q := range c.Questions {
			sq := services.Question{
				QuestionID: q.QuestionID,
				Text:       q.Text,
				Type:       services.QuestionType(q.Type),
				Order:      q.Order,
			}
			for _, o := range q.Options {
				sq.Options = append(sq.Options, services.Option{Text: o.Text, Score: o.Score})
			}
			cat.Questions = append(cat.Questions, sq)
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}

func convertServiceTemplate(t *services.FormTemplate) *FormTemplate {
	if t == nil {
		return nil
	}
	out := &FormTemplate{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
	for _, c := range t.Categories {
		cat := Category{CategoryID: c.CategoryID, Name: c.Name, Order: c.Order}
		for _, q := range c.Questions {
			aq := Question{
				QuestionID: q.QuestionID,
				Text:       q.Text,
				Type:       string(q.Type),
				Order:      q.Order,
			}
			for _, o := range q.Options {
				aq.Options = append(aq.Options, Option{Text: o.Text, Score: o.Score})
			}
			cat.Questions = append(cat.Questions, aq)
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}

func convertAPIAudit(a *Audit) *services.Audit {
	if a == nil {
		return nil
	}
	out := &services.Audit{
		ID:             a.ID,
		FormTemplateID: a.FormTemplateID,
		StoreID:        a.StoreID,
		AuditorID:      a.AuditorID,
		Status:         a.Status,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		TotalScore:     a.TotalScore,
	}
	for _, ans := range a.Answers {
		out.Answers = append(out.Answers, services.Answer{QuestionID: ans.QuestionID, Answer: ans.Answer, Score: ans.Score})
	}
	return out
}

func convertServiceAudit(a *services.Audit) *Audit {
	if a == nil {
		return nil
	}
	out := &Audit{
		ID:             a.ID,
		FormTemplateID: a.FormTemplateID,
		StoreID:        a.StoreID,
		AuditorID:      a.AuditorID,
		Status:         a.Status,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		TotalScore:     a.TotalScore,
		Answers:        make([]Answer, 0, len(a.Answers)),
	}
	for _, ans := range a.Answers {
		out.Answers = append(out.Answers, Answer{QuestionID: ans.QuestionID, Answer: ans.Answer, Score: ans.Score})
	}
	return out
}

func convertAPIUser(u *User) *services.UserProfile {
	if u == nil {
		return nil
	}
	return &services.UserProfile{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        services.Role(u.Role),
	}
}
