// Package vm16 provides the instruction-set tables, operand-mode tables and
// sparse memory image model for the VM16 16-bit virtual machine.
//
// A VM16 program is a sequence of 16-bit words. An instruction word is bit
// packed as:
//
//	opcode:6 | operand1-mode:5 | operand2-mode:5
//
// and is followed by zero, one or two trailing words holding an immediate
// value or address, depending on the operand modes used. See Instructions
// and OperandNames for the exact tables.
//
//	opcode	mnemonic	opnd1	opnd2
//	0	nop		-	-
//	1	dly		-	-
//	2	sys		NUM	-
//	3	int		NUM	-
//	4	jump		ADR	-
//	5	call		ADR	-
//	6	ret		-	-
//	7	halt		-	-
//	8	move		DST	SRC
//	9	xchg		DST	DST
//	10	inc		DST	-
//	11	dec		DST	-
//	12	add		DST	SRC
//	13	sub		DST	SRC
//	14	mul		DST	SRC
//	15	div		DST	SRC
//	16	and		DST	SRC
//	17	or		DST	SRC
//	18	xor		DST	SRC
//	19	not		DST	-
//	20	bnze		DST	ADR
//	21	bze		DST	ADR
//	22	bpos		DST	ADR
//	23	bneg		DST	ADR
//	24	in		DST	CNST
//	25	out		CNST	SRC
//	26	push		SRC	-
//	27	pop		DST	-
//	28	swap		DST	-
//	29	dbnz		DST	ADR
//	30	mod		DST	SRC
//	31	shl		DST	SRC
//	32	shr		DST	SRC
//	33	addc		DST	SRC
//	34	mulc		DST	SRC
//	35	skne		SRC	SRC
//	36	skeq		SRC	SRC
//	37	sklt		SRC	SRC
//	38	skgt		SRC	SRC
//
// Operand groups:
//
//	REG  = A, B, C, D, X, Y, PC, SP
//	MEM  = [X], [Y], [X]+, [Y]+, IND, [SP+n]
//	ADR  = IMM, REL, #0, #1
//	CNST = #0, #1, IMM
//	DST  = REG ∪ MEM
//	SRC  = DST ∪ CNST
//	NUM  = inline 10-bit immediate baked into the opcode word itself
package vm16
