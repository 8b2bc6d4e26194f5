/*
Package taxreward implements tax and reward accounting of a single token.

A deployed policy is a State record. It declares the token ticker, a tax
vault collecting a flat rate of taxed transfers, a reward vault and the
minimal interval between two reward distributions. Distribution pays a
single recipient a share of the reward vault proportional to the recipient
holding and is permissionless. Only the policy authority may move the
distribution schedule.

All value movement is delegated to the ledger (x/cash). Every operation is
atomic: it either applies all of its effects and the state update or
nothing.
*/
package taxreward
