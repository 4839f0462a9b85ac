/*
Package publisher posts and edits LiveJournal entries.

A Publisher collects the entry (subject, body, time, tags, properties,
visibility) and the account credentials, then Save runs the whole exchange:

 1. LJ.XMLRPC.getchallenge returns a one-time challenge.
 2. auth_response = md5hex(challenge + md5hex(password)) is computed locally.
 3. LJ.XMLRPC.postevent (or LJ.XMLRPC.editevent when an id was set) is called
    with the entry and the auth fields.

Typical use:

	p := publisher.New("username", "password", false,
		publisher.WithClient(client.NewXMLRPCClient(endpoint)))
	p.SetSubject("Subject test").SetBody("Hello, <b>world</b>")
	p.SetTags([]string{"red", "green"}).AddTag("blue")
	if err := p.SetMetadata(models.PropOptNoComments, true); err != nil {
		return err
	}

	receipt, err := p.Save(ctx)
	if err != nil {
		msg, _ := p.ErrorMessage()
		code, _ := p.ErrorCode()
		return fmt.Errorf("error (code %d): %s", code, msg)
	}
	fmt.Println(receipt.ItemID, receipt.URL)

To update an entry call SetID before Save. After a successful Save the
publisher keeps the assigned id, so changing the body and saving again edits
the same entry.

Save never retries. A challenge failure stops before any submit call and
wraps ErrChallenge; a fault on submit is returned as *client.Fault; a reply
without itemid, url or anum yields ErrIncompleteReply.
*/
package publisher
