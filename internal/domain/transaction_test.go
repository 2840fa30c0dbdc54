package domain

import "testing"

func TestTransactionRecord_CounterpartLabel(t *testing.T) {
	tests := []struct {
		name   string
		record TransactionRecord
		want   string
	}{
		{
			name: "sent uses receiver name",
			record: TransactionRecord{
				Transaction:  Transaction{Type: TransactionTypeSent},
				ReceiverName: "Bob",
				SenderName:   "Alice",
			},
			want: "Bob",
		},
		{
			name: "received uses sender name",
			record: TransactionRecord{
				Transaction:  Transaction{Type: TransactionTypeReceived},
				ReceiverName: "Bob",
				SenderName:   "Alice",
			},
			want: "Alice",
		},
		{
			name:   "deposit uses the type itself",
			record: TransactionRecord{Transaction: Transaction{Type: TransactionTypeDeposit}},
			want:   "DEPOSIT",
		},
		{
			name:   "withdraw uses the type itself",
			record: TransactionRecord{Transaction: Transaction{Type: TransactionTypeWithdraw}},
			want:   "WITHDRAW",
		},
		{
			name:   "sent with missing receiver falls back to sentinel",
			record: TransactionRecord{Transaction: Transaction{Type: TransactionTypeSent}},
			want:   CounterpartUnknown,
		},
		{
			name:   "received with missing sender falls back to sentinel",
			record: TransactionRecord{Transaction: Transaction{Type: TransactionTypeReceived}},
			want:   CounterpartUnknown,
		},
		{
			name:   "unknown type falls back to sentinel",
			record: TransactionRecord{Transaction: Transaction{Type: TransactionType("REFUND")}},
			want:   CounterpartUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.CounterpartLabel(); got != tt.want {
				t.Errorf("CounterpartLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
