package storage

import (
	"gearscan/internal/domain"
)

// sessionModelToDomain converts a SessionModel (GORM) plus its item rows to a
// domain.Session
func sessionModelToDomain(m SessionModel, items []SessionItemModel) domain.Session {
	session := domain.Session{
		Dirty:            m.Dirty,
		ID:               m.ID,
		Name:             m.Name,
		RemoteID:         m.RemoteID,
		Revision:         m.Revision,
		SyncError:        m.SyncError,
		SyncState:        domain.SyncState(m.SyncState),
		SyncedWithServer: m.SyncedWithServer,
		UpdatedAt:        m.LastUpdated,
	}

	session.Items = make([]domain.SessionItem, len(items))
	for i, item := range items {
		session.Items[i] = domain.SessionItem{
			Barcode:      item.Barcode,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			EquipmentID:  item.EquipmentID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
		}
	}

	return session
}

// domainToSessionModel converts a domain.Session to its GORM models
func domainToSessionModel(s domain.Session) (SessionModel, []SessionItemModel) {
	model := SessionModel{
		Dirty:            s.Dirty,
		ID:               s.ID,
		LastUpdated:      s.UpdatedAt,
		Name:             s.Name,
		RemoteID:         s.RemoteID,
		Revision:         s.Revision,
		SyncError:        s.SyncError,
		SyncState:        string(s.SyncState),
		SyncedWithServer: s.SyncedWithServer,
	}

	items := make([]SessionItemModel, len(s.Items))
	for i, item := range s.Items {
		items[i] = SessionItemModel{
			Barcode:      item.Barcode,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			EquipmentID:  item.EquipmentID,
			Name:         item.Name,
			Position:     i,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
			SessionID:    s.ID,
		}
	}

	return model, items
}
